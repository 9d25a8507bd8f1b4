package models

import "time"

// Principal is the authenticated identity the provider returns for a
// presented token. It lives for one request; it is never cached.
type Principal struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	EmailConfirmedAt *time.Time   `json:"email_confirmed_at,omitempty"`
	BannedUntil      *time.Time   `json:"banned_until,omitempty"`
	UserMetadata     RoleMetadata `json:"user_metadata"`
	AppMetadata      RoleMetadata `json:"app_metadata"`
}

// RoleMetadata mirrors the provider's metadata objects; only the role claim
// is interpreted by this service.
type RoleMetadata struct {
	Role string `json:"role,omitempty"`
}

// ClaimRole returns the effective claim role: the service-settable app
// metadata wins over the user-settable user metadata.
func (p *Principal) ClaimRole() string {
	if p.AppMetadata.Role != "" {
		return p.AppMetadata.Role
	}
	return p.UserMetadata.Role
}

// SuspendedAt reports whether the principal is banned at the given instant.
func (p *Principal) SuspendedAt(now time.Time) bool {
	return p.BannedUntil != nil && p.BannedUntil.After(now)
}
