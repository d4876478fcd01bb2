package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrBelowMinOrder     = errors.New("quantity below minimum order")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")

	// -- Storage Failures --
	ErrFailedLoadCart = errors.New("failed to load cart")
	ErrFailedSaveCart = errors.New("failed to save cart")
)
