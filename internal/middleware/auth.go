package middleware

import (
	"net/http"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/user"

	"go.uber.org/zap"
)

// TokenParser verifies an access token; user.Service satisfies it.
type TokenParser interface {
	ParseToken(token string) (*user.CustomClaims, error)
}

// Authenticate decodes the access token when one is presented. Requests
// without a token pass through anonymously; a token that fails verification
// is rejected with 401.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.ParseToken(token)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token",
					zap.String("layer", "middleware"),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			id := auth.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logger.WithOwnerID(ctx, id.OwnerID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth answers 401 unless Authenticate put an identity in context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
