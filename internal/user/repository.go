package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agrimart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, name, email, password, COALESCE(phone, ''), role, COALESCE(avatar_url, ''), created_at, updated_at"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		u.Name, u.Email, u.Password, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		return User{}, ErrEmailExists
	}
	if err != nil {
		log.Error("db: failed to insert user", zap.String("email", u.Email), zap.Error(err))
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *repository) FindByID(ctx context.Context, id int64) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *repository) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Int64("user_id", id),
	)

	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, input.Name, input.Phone, input.AvatarURL))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Error("failed to update profile", zap.Error(err))
	}
	return u, err
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1", id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
