package user

import (
	"context"
	"testing"

	"agrimart-be/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreRepository(store.NewMemoryStore())

	first, err := repo.Create(ctx, User{Name: "Ravi", Email: "ravi@example.com", Password: "hash1", Role: RoleCustomer})
	require.NoError(t, err)
	second, err := repo.Create(ctx, User{Name: "Meena", Email: "meena@example.com", Password: "hash2", Role: RoleFarmer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	t.Run("Email is unique case-insensitively", func(t *testing.T) {
		_, err := repo.Create(ctx, User{Email: "RAVI@example.com"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Lookups keep the password hash", func(t *testing.T) {
		u, err := repo.FindByEmail(ctx, "meena@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hash2", u.Password)
		assert.Equal(t, RoleFarmer, u.Role)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		_, err = repo.FindByID(ctx, 42)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Partial profile update", func(t *testing.T) {
		phone := "9876543210"
		u, err := repo.UpdateProfile(ctx, first.ID, UpdateProfileInput{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "Ravi", u.Name)
		assert.Equal(t, phone, u.Phone)
	})

	t.Run("Password update", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, first.ID, "hash3"))
		u, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash3", u.Password)

		assert.ErrorIs(t, repo.UpdatePassword(ctx, 42, "x"), ErrUserNotFound)
	})
}
