package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"
)

// AuthenticationMiddleware extracts the bearer token, verifies it against
// the identity provider and attaches the principal to the context. The
// Authorization header wins; the HttpOnly cookie is the fallback for
// browser navigations that cannot set headers. One provider call per
// request, no retries.
func (m *Middlewares) AuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		principal, err := m.AuthProviderClient.VerifyToken(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if principal.SuspendedAt(time.Now()) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAccountSuspended(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ACCESS_TOKEN_KEY, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken takes the Authorization header only when it carries a
// Bearer scheme; any other header falls through to the cookie.
func extractToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := r.Cookie(constvars.AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
