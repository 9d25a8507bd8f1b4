package middlewares

import (
	"context"
	"net/http"

	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"
)

// ResolveRoleMiddleware turns the authenticated principal into the
// request's resolved identity. It must sit after AuthenticationMiddleware;
// a missing principal here is a wiring bug surfaced as NOT_AUTHENTICATED,
// not a silent default.
func (m *Middlewares) ResolveRoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
		if !ok || principal == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotAuthenticated(nil))
			return
		}

		identity, err := m.IdentityResolver.Resolve(r.Context(), principal)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_RESOLVED_IDENTITY_KEY, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
