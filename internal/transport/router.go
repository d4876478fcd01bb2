package transport

import (
	"net/http"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/middleware"
)

// RouterOptions carries the cross-cutting pieces of the HTTP stack.
type RouterOptions struct {
	Tokens     middleware.TokenParser
	Limiter    *middleware.Limiter
	CORSOrigin string
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
}

// NewRouter registers every API route on a fresh mux and wraps it with the
// middleware stack. Route patterns double as metric labels.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.Instrument(pattern, fn))
	}
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.Instrument(pattern, middleware.RequireAuth(fn)))
	}

	handle("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	// catalog
	handle("GET /api/products", h.listProducts)
	handle("GET /api/products/facets", h.facets)
	handle("GET /api/products/{id}", h.getProduct)
	private("POST /api/products", h.createProduct)
	private("POST /api/catalog/reload", h.reloadCatalog)
	handle("GET /api/locations/similar", h.similarLocations)
	handle("GET /api/categories", h.listCategories)
	handle("GET /api/categories/options", h.categoryOptions)

	// cart
	private("GET /api/cart", h.getCart)
	private("POST /api/cart", h.addCartItem)
	private("DELETE /api/cart", h.clearCart)
	private("GET /api/cart/summary", h.cartSummary)
	private("PATCH /api/cart/{productID}", h.updateCartItem)
	private("DELETE /api/cart/{productID}", h.removeCartItem)

	// checkout
	private("POST /api/checkout", h.startCheckout)
	private("GET /api/checkout/{id}", h.getCheckout)
	private("PUT /api/checkout/{id}/shipping", h.setShipping)
	private("POST /api/checkout/{id}/payment", h.pay)
	private("GET /api/orders", h.listOrders)

	// accounts
	handle("POST /api/auth/register", h.register)
	handle("POST /api/auth/login", h.login)
	handle("POST /api/auth/logout", h.logout)
	private("GET /api/profile", h.profile)
	private("PUT /api/profile", h.updateProfile)
	private("PUT /api/profile/password", h.changePassword)

	// directory and market data
	handle("GET /api/farmers", h.listFarmers)
	handle("GET /api/farmers/{id}", h.getFarmer)
	handle("GET /api/price-trends", h.listTrends)
	handle("POST /api/price-trends/predict", h.predict)

	mws := []func(http.Handler) http.Handler{
		middleware.Recover,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(opts.CORSOrigin),
		middleware.Authenticate(opts.Tokens),
	}
	if opts.Limiter != nil {
		mws = append(mws, opts.Limiter.Middleware)
	}
	return middleware.Chain(mux, mws...)
}
