package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/urraccon/contacts-api/internal/http/respond"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/service"
)

type userContextKey struct{}

// RequireAuth gates a handler behind bearer-token authentication. Every
// failure, expired, malformed, revoked, or unknown user, answers with the
// same 401 body so callers cannot distinguish the cases; the specific kind
// is logged server-side. Store faults map to 500, not 401.
func RequireAuth(auth *service.Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if service.IsAuthFailure(err) {
					log.Printf("auth: rejected request to %s: %v", r.URL.Path, err)
					respond.Message(w, http.StatusUnauthorized, "Not authorized")
					return
				}
				respond.ServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
