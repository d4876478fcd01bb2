package transport

import (
	"net/http"

	"agrimart-be/internal/checkout"
)

func (h *Handler) startCheckout(w http.ResponseWriter, r *http.Request) {
	s, err := h.Checkout.Start(r.Context(), owner(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	s, err := h.Checkout.Get(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) setShipping(w http.ResponseWriter, r *http.Request) {
	var addr checkout.Address
	if err := decodeJSON(r, &addr); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.Checkout.SetShipping(r.Context(), owner(r), r.PathValue("id"), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var method checkout.PaymentMethod
	if err := decodeJSON(r, &method); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.Checkout.Pay(r.Context(), owner(r), r.PathValue("id"), method)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Checkout.Orders(r.Context(), owner(r), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}
