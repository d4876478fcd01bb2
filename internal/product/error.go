package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProduct = errors.New("invalid product input")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrReadOnlyCatalog = errors.New("catalog source is read-only")

	// -- Database & Operation Failures --
	ErrFailedLoadCatalog   = errors.New("failed to load catalog")
	ErrFailedCreateProduct = errors.New("failed to create product")
)
