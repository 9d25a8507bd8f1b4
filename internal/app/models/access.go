package models

import (
	"fmt"
	"strings"

	"clinicdesk-service/internal/pkg/constvars"
)

// AccessDecision is the terminal output of a guard check. It is never
// persisted; a denied decision carries the code/status pair the response
// must use.
type AccessDecision struct {
	Allowed    bool
	Reason     string
	HTTPStatus int
	ErrorCode  string
}

func Allow() AccessDecision {
	return AccessDecision{Allowed: true}
}

func Deny(code string, status int, reason string) AccessDecision {
	return AccessDecision{
		Allowed:    false,
		Reason:     reason,
		HTTPStatus: status,
		ErrorCode:  code,
	}
}

// CheckRole admits the identity when its role is in the route's allowed
// set. An empty allowed set admits nobody.
func CheckRole(identity *ResolvedIdentity, allowedRoles ...string) AccessDecision {
	if identity == nil {
		return Deny(constvars.ErrCodeNotAuthenticated, constvars.StatusUnauthorized, "no resolved identity on request")
	}
	for _, role := range allowedRoles {
		if identity.Role == role {
			return Allow()
		}
	}
	return Deny(constvars.ErrCodeForbiddenRole, constvars.StatusForbidden,
		fmt.Sprintf("role %q is not permitted here", identity.Role))
}

// CheckOwnership admits clinicians and admins to any patient's resources;
// clients only to their own. The patient ID comes from the route param or
// the file key, never from request bodies.
func CheckOwnership(identity *ResolvedIdentity, patientID string) AccessDecision {
	if identity == nil {
		return Deny(constvars.ErrCodeNotAuthenticated, constvars.StatusUnauthorized, "no resolved identity on request")
	}
	switch identity.Role {
	case constvars.ClinicdeskRoleClinician, constvars.ClinicdeskRoleAdmin:
		return Allow()
	case constvars.ClinicdeskRoleClient:
		if identity.Principal != nil && identity.Principal.ID == patientID {
			return Allow()
		}
		return Deny(constvars.ErrCodeForbiddenOwnership, constvars.StatusForbidden,
			"client may only access their own resources")
	}
	return Deny(constvars.ErrCodeForbiddenRole, constvars.StatusForbidden,
		fmt.Sprintf("role %q is not permitted here", identity.Role))
}

// FileObjectRef identifies a stored clinical document. Keys follow
// patients/<patientID>/<name>, so the owning patient is recoverable from
// the key without a metadata read.
type FileObjectRef struct {
	Key       string `json:"key"`
	OwnerID   string `json:"owner_id"`
	PatientID string `json:"patient_id"`
}

// ParseFileObjectKey splits a storage key into its object reference.
// It fails on keys outside the patients/ namespace.
func ParseFileObjectKey(key string) (FileObjectRef, error) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] != constvars.FileObjectKeyPrefix || parts[1] == "" || parts[2] == "" {
		return FileObjectRef{}, fmt.Errorf("malformed file object key %q", key)
	}
	return FileObjectRef{
		Key:       key,
		OwnerID:   parts[1],
		PatientID: parts[1],
	}, nil
}
