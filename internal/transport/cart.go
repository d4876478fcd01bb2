package transport

import (
	"net/http"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/cart"
)

type cartView struct {
	Items   []cart.Item  `json:"items"`
	Summary cart.Summary `json:"summary"`
}

func viewOf(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, Summary: cart.Summarize(items)}
}

type addItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

type updateItemRequest struct {
	Quantity float64 `json:"quantity"`
}

// owner is only called behind RequireAuth.
func owner(r *http.Request) string {
	id, _ := auth.IdentityFrom(r.Context())
	return id.OwnerID()
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Carts.Get(r.Context(), owner(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.Carts.Add(r.Context(), owner(r), req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r.PathValue("productID"), "product id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.Carts.Update(r.Context(), owner(r), productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r.PathValue("productID"), "product id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.Carts.Remove(r.Context(), owner(r), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), owner(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cartSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Carts.Summary(r.Context(), owner(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
