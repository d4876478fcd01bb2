package transport

import (
	"net/http"
	"strings"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"
)

/* ---------- PRODUCTS ---------- */

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	spec, err := ParseQuerySpec(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Products.Query(r.Context(), spec))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r.PathValue("id"), "product id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.Products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != string(user.RoleFarmer) && id.Role != string(user.RoleAdmin) {
		writeError(w, r, errForbidden)
		return
	}

	var in product.NewProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.Products.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Products.Facets(r.Context()))
}

func (h *Handler) similarLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"locations": h.Products.SimilarLocations(r.Context(), r.URL.Query().Get("q")),
	})
}

func (h *Handler) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != string(user.RoleAdmin) {
		writeError(w, r, errForbidden)
		return
	}
	if err := h.RequestReload(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

/* ---------- CATEGORIES ---------- */

type categoryPage struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := int32Param(q, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := int32Param(q, "page")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var filter *string
	if f := strings.TrimSpace(q.Get("filter")); f != "" {
		filter = &f
	}

	cats, total, err := h.Categories.GetCategories(r.Context(), filter, limit, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryPage{Items: cats, Total: total})
}

func (h *Handler) categoryOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Categories.Options(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"options": opts})
}
