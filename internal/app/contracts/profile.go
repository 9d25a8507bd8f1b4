package contracts

import (
	"context"

	"clinicdesk-service/internal/app/models"
)

// ProfileProvider is one backing store's view of a principal. TryResolve
// returns (nil, nil) on a clean miss; errors are reserved for store
// failures. Providers are queried in a fixed order, so adding a store is
// an append, never a rewrite.
type ProfileProvider interface {
	// Role names the role this store is authoritative for.
	Role() string
	TryResolve(ctx context.Context, principalID string) (*models.Profile, error)
}

// ProfileResolver walks the ordered provider chain.
type ProfileResolver interface {
	// Resolve queries the fallback chain (clinician store first, then
	// client store) and stops at the first hit. (nil, nil) means no store
	// holds a profile for the principal.
	Resolve(ctx context.Context, principalID string) (*models.Profile, error)

	// ResolveForRole queries only the store that backs the given role,
	// including the admin store, which is outside the fallback chain.
	ResolveForRole(ctx context.Context, role, principalID string) (*models.Profile, error)
}
