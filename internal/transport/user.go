package transport

import (
	"net/http"
	"time"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/user"
)

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	token, u, err := h.Users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setTokenCookie(w, token, h.TokenTTL)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in user.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	token, u, err := h.Users.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setTokenCookie(w, token, h.TokenTTL)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.setTokenCookie(w, "", -time.Second)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	u, err := h.Users.Profile(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	var in user.UpdateProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), id.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	var in user.ChangePasswordInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Users.ChangePassword(r.Context(), id.UserID, in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
