package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 42, Email: "a@b.c", Role: "customer"})
	id, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, "42", id.OwnerID())
}
