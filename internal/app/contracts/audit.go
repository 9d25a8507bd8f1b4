package contracts

import "context"

// AuditEvent is the observability record for authorization outcomes and
// the deliberately-swallowed profile-fetch failure. Events are advisory:
// a publish failure is logged and never fails the request that raised it.
type AuditEvent struct {
	Event       string `json:"event"`
	RequestID   string `json:"request_id,omitempty"`
	PrincipalID string `json:"principal_id,omitempty"`
	Role        string `json:"role,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	Reason      string `json:"reason,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

type AuditPublisher interface {
	Publish(ctx context.Context, event *AuditEvent) error
}
