package auth

import (
	"context"
	"strconv"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller decoded from a verified access token.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// OwnerID is the key carts, checkouts and orders are stored under.
func (i Identity) OwnerID() string {
	return strconv.FormatInt(i.UserID, 10)
}

// WithIdentity sets the caller into context (called by middleware)
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom retrieves the caller safely
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
