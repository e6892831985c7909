package middleware

import (
	"net/http"

	"panduankota/backend/internal/auth"
)

// IsAdminMiddleware rejects non-admin callers outright. Admin-only routes
// return an explicit 403 instead of silently no-oping.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.IsAdmin() {
				http.Error(w, "Forbidden. Admin role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
