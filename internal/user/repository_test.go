package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "name", "email", "password", "phone", "role", "avatar_url", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	u := User{Name: "Ravi Kumar", Email: "ravi@example.com", Password: "hash", Role: RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ravi Kumar", "ravi@example.com", "hash", RoleCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		created, err := repo.Create(context.Background(), u)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(context.Background(), u)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), u)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("ravi@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(1, "Ravi", "ravi@example.com", "hash", "", "customer", "", now, now))

		u, err := repo.FindByEmail(context.Background(), "ravi@example.com")
		require.NoError(t, err)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.Equal(t, "hash", u.Password)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	name := "Ravi K"
	now := time.Now()

	mock.ExpectQuery("UPDATE users SET").
		WithArgs(int64(1), &name, nil, nil).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, name, "ravi@example.com", "hash", "", "customer", "", now, now))

	u, err := repo.UpdateProfile(context.Background(), 1, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
}

func TestRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password").
			WithArgs(int64(1), "newhash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePassword(context.Background(), 1, "newhash"))
	})

	t.Run("Unknown user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET password").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePassword(context.Background(), 99, "newhash"), ErrUserNotFound)
	})
}
