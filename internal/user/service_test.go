package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrimart-be/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User) (User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (User, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("testsecret", time.Hour)
	require.NoError(t, err)
	return issuer
}

var validRegistration = RegisterInput{
	FirstName:       "Ravi",
	LastName:        "Kumar",
	Email:           " Ravi@Example.com ",
	Password:        "password123",
	ConfirmPassword: "password123",
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := NewService(NewStoreRepository(store.NewMemoryStore()), testIssuer(t))

		token, u, err := svc.Register(ctx, validRegistration)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Ravi Kumar", u.Name)
		assert.Equal(t, "ravi@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.NotEqual(t, "password123", u.Password)

		claims, err := svc.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("Email taken", func(t *testing.T) {
		svc := NewService(NewStoreRepository(store.NewMemoryStore()), testIssuer(t))

		_, _, err := svc.Register(ctx, validRegistration)
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, validRegistration)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testIssuer(t))

		bad := validRegistration
		bad.ConfirmPassword = "different"
		_, _, err := svc.Register(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad = validRegistration
		bad.Email = "not-an-email"
		_, _, err = svc.Register(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad = validRegistration
		bad.Password, bad.ConfirmPassword = "short", "short"
		_, _, err = svc.Register(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testIssuer(t))
		repo.On("Create", ctx, mock.AnythingOfType("User")).Return(User{}, errors.New("db error"))

		_, _, err := svc.Register(ctx, validRegistration)
		assert.EqualError(t, err, "db error")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStoreRepository(store.NewMemoryStore()), testIssuer(t))
	_, registered, err := svc.Register(ctx, validRegistration)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, u, err := svc.Login(ctx, LoginInput{Email: "RAVI@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Email: "ravi@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "x@example.com").Return(User{}, errors.New("db error"))

		_, _, err := NewService(repo, testIssuer(t)).Login(ctx, LoginInput{Email: "x@example.com", Password: "p"})
		assert.EqualError(t, err, "db error")
	})
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStoreRepository(store.NewMemoryStore()), testIssuer(t))
	_, u, err := svc.Register(ctx, validRegistration)
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	badPhone := "123"
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Phone: &badPhone})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Ravi K"
	got, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", got.Name)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStoreRepository(store.NewMemoryStore()), testIssuer(t))
	_, u, err := svc.Register(ctx, validRegistration)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newpassword1", ConfirmPassword: "newpassword1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "password123", NewPassword: "password123", ConfirmPassword: "password123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "password123", NewPassword: "newpassword1", ConfirmPassword: "newpassword1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: u.Email, Password: "newpassword1"})
	assert.NoError(t, err)
}
