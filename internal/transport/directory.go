package transport

import (
	"net/http"

	"agrimart-be/internal/pricetrend"
)

func (h *Handler) listFarmers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"farmers": h.Farmers.Search(r.Context(), r.URL.Query().Get("q")),
	})
}

func (h *Handler) getFarmer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r.PathValue("id"), "farmer id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := h.Farmers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) listTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": pricetrend.Categories,
		"crops":      h.Trends.Crops(r.Context()),
		"trends":     h.Trends.List(r.Context(), q.Get("category"), q.Get("search")),
	})
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	var req pricetrend.PredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.Trends.Predict(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
