package middleware

import (
	"context"
	"net/http"
	"strings"

	"panduankota/backend/internal/auth"
	"panduankota/backend/internal/common"
	"panduankota/backend/internal/logging"
)

// SessionResolver is the slice of the session service the middleware needs.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*common.SessionData, error)
	RefreshSession(ctx context.Context, sessionID string) error
}

// AuthMiddleware accepts either a Bearer access token or a server-side
// session ID. Both resolve to UserClaims in the request context.
func AuthMiddleware(sessionSvc SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			sessionID := r.Header.Get("X-Session-Id")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				token := strings.TrimPrefix(authHeader, "Bearer ")
				parsed, err := auth.ParseToken(token)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			case sessionID != "":
				session, err := sessionSvc.GetSession(r.Context(), sessionID)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}
				claims = &auth.SessionClaims{
					UserUUID:      session.UserID,
					UsernameValue: session.Username,
					RoleValue:     session.Role,
					SessionIDVal:  session.SessionID,
				}

				// Sliding expiration: an authenticated request pushes the
				// session TTL out. Best effort, the request proceeds either way.
				if err := sessionSvc.RefreshSession(r.Context(), sessionID); err != nil {
					logging.Warn("session refresh failed", "error", err.Error())
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
