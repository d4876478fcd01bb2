package transport

import (
	"context"
	"time"

	"agrimart-be/internal/cart"
	"agrimart-be/internal/category"
	"agrimart-be/internal/checkout"
	"agrimart-be/internal/farmer"
	"agrimart-be/internal/pricetrend"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"
)

// Handler holds the services behind the API routes.
type Handler struct {
	Products   product.Service
	Categories category.Service
	Carts      cart.Service
	Checkout   checkout.Service
	Users      user.Service
	Farmers    farmer.Service
	Trends     pricetrend.Service

	// RequestReload asks every catalog replica to reload its source.
	RequestReload func(ctx context.Context) error

	// TokenTTL bounds the access-token cookie set on login.
	TokenTTL time.Duration
	// SecureCookies marks the cookie Secure; enabled in production.
	SecureCookies bool
}
