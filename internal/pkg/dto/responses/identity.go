package responses

import "clinicdesk-service/internal/app/models"

// ResolvedIdentityResponse is the /users/me payload: the effective role
// plus whatever profile the role-appropriate store held, without leaking
// raw provider metadata.
type ResolvedIdentityResponse struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Role    string          `json:"role"`
	Profile *models.Profile `json:"profile"`
}
