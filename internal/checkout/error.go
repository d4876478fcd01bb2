package checkout

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidAddress = errors.New("invalid shipping address")
	ErrInvalidPayment = errors.New("invalid payment method")

	// -- Resource State --
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidStep     = errors.New("checkout step out of order")
	ErrSessionNotFound = errors.New("checkout session not found")

	// -- Payment --
	ErrPaymentDeclined = errors.New("payment declined")
	ErrPaymentTimeout  = errors.New("payment timed out")

	// -- Storage Failures --
	ErrFailedSaveOrder = errors.New("failed to save order")
)
