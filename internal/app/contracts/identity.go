package contracts

import (
	"context"

	"clinicdesk-service/internal/app/models"
)

// AuthProviderClient wraps the hosted identity provider. Verification is
// delegated entirely; this service never parses or mints credentials of
// its own. One verification attempt per request, no retries.
type AuthProviderClient interface {
	// VerifyToken exchanges a bearer token for the authenticated principal.
	// Failures come back as exceptions.CustomError carrying one of
	// INVALID_TOKEN, TOKEN_EXPIRED or AUTH_SERVICE_ERROR.
	VerifyToken(ctx context.Context, token string) (*models.Principal, error)

	// GetUserByID fetches a principal through the provider's admin API.
	GetUserByID(ctx context.Context, id string) (*models.Principal, error)
}

// IdentityResolver turns a validated principal into the request-scoped
// resolved identity: effective role plus normalized profile.
type IdentityResolver interface {
	Resolve(ctx context.Context, principal *models.Principal) (*models.ResolvedIdentity, error)
}
