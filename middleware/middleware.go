package middleware

import (
	"context"
	"net/http"

	"project-manager/backend/logging"
	"project-manager/backend/models"
	"project-manager/backend/services"
)

type contextKey string

const principalKey contextKey = "principal"

// JWTAuthMiddleware resolves the bearer token once per request and
// attaches the principal to the request context. Handlers pass it on
// to services explicitly; nothing below this layer re-reads headers.
func JWTAuthMiddleware(jwtService *services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := jwtService.ResolveToken(r.Header.Get("Authorization"))
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_FAILED, Description: Token resolution failed for %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal resolved by
// JWTAuthMiddleware, or nil when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *models.Principal {
	principal, _ := ctx.Value(principalKey).(*models.Principal)
	return principal
}
