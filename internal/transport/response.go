// Package transport exposes the marketplace services as a JSON HTTP API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"agrimart-be/internal/cart"
	"agrimart-be/internal/checkout"
	"agrimart-be/internal/farmer"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/pricetrend"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest = errors.New("bad request")
	errForbidden  = errors.New("forbidden")
)

// statusTable maps domain sentinels to HTTP statuses. Order matters only
// when an error wraps more than one sentinel.
var statusTable = []struct {
	err  error
	code int
}{
	// -- 400 --
	{errBadRequest, http.StatusBadRequest},
	{product.ErrInvalidProduct, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrBelowMinOrder, http.StatusBadRequest},
	{checkout.ErrInvalidAddress, http.StatusBadRequest},
	{checkout.ErrInvalidPayment, http.StatusBadRequest},
	{user.ErrInvalidInput, http.StatusBadRequest},
	{pricetrend.ErrInvalidRequest, http.StatusBadRequest},

	// -- 401 / 402 / 403 --
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{user.ErrInvalidToken, http.StatusUnauthorized},
	{cart.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{checkout.ErrPaymentDeclined, http.StatusPaymentRequired},
	{errForbidden, http.StatusForbidden},

	// -- 404 --
	{product.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrCartItemNotFound, http.StatusNotFound},
	{checkout.ErrSessionNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},
	{farmer.ErrFarmerNotFound, http.StatusNotFound},
	{pricetrend.ErrUnknownCrop, http.StatusNotFound},

	// -- 409 --
	{user.ErrEmailExists, http.StatusConflict},
	{cart.ErrInsufficientStock, http.StatusConflict},
	{checkout.ErrEmptyCart, http.StatusConflict},
	{checkout.ErrInvalidStep, http.StatusConflict},
	{product.ErrReadOnlyCatalog, http.StatusConflict},

	// -- 504 --
	{checkout.ErrPaymentTimeout, http.StatusGatewayTimeout},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// StatusOf returns the HTTP status for err, 500 when no sentinel matches.
func StatusOf(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v before committing code, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.L().Error("encode response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"internal server error"}`+"\n")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// writeError reports err to the client. Unmapped errors are logged and
// answered with a generic message so internals do not leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "transport"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = http.StatusText(code)
	}
	writeJSON(w, code, errorBody{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", errBadRequest, err)
	}
	return nil
}
