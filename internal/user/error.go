package user

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")

	// PgUniqueViolation is the postgres error code for unique_violation.
	PgUniqueViolation = "23505"
)
