package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
)

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, id uuid.UUID) (auth.Actor, error)
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved actor in the request context.
func Middleware(tokens TokenVerifier, users ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				render.Error(w, r, apperr.Unauthorized("missing bearer token"))
				return
			}

			id, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				render.Error(w, r, err)
				return
			}

			actor, err := users.ResolveActor(r.Context(), id)
			if err != nil {
				render.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}
