package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type identityResolverUsecase struct {
	ProfileResolver contracts.ProfileResolver
	AuditPublisher  contracts.AuditPublisher
	AdminAllowlist  map[string]struct{}
	Log             *zap.Logger
}

var (
	identityResolverUsecaseInstance contracts.IdentityResolver
	onceIdentityResolverUsecase     sync.Once
)

func NewIdentityResolverUsecase(
	profileResolver contracts.ProfileResolver,
	auditPublisher contracts.AuditPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.IdentityResolver {
	onceIdentityResolverUsecase.Do(func() {
		allowlist := make(map[string]struct{}, len(internalConfig.App.AdminAllowlistEmails))
		for _, email := range internalConfig.App.AdminAllowlistEmails {
			allowlist[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
		}
		instance := &identityResolverUsecase{
			ProfileResolver: profileResolver,
			AuditPublisher:  auditPublisher,
			AdminAllowlist:  allowlist,
			Log:             logger,
		}
		identityResolverUsecaseInstance = instance
	})
	return identityResolverUsecaseInstance
}

// Resolve determines the effective role for one request. Precedence is
// fixed: a metadata role claim, then the admin email allowlist, then the
// profile store fallback chain, then the "client" default. A claim outside
// the known role set is rejected outright, never coerced to the default.
func (u *identityResolverUsecase) Resolve(ctx context.Context, principal *models.Principal) (*models.ResolvedIdentity, error) {
	if principal == nil {
		return nil, exceptions.ErrNotAuthenticated(nil)
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var (
		role    string
		profile *models.Profile
	)

	switch claim := principal.ClaimRole(); {
	case claim != "":
		if !isKnownRole(claim) {
			u.publishAudit(ctx, &contracts.AuditEvent{
				Event:       constvars.AuditEventAuthDenied,
				RequestID:   requestID,
				PrincipalID: principal.ID,
				ErrorCode:   constvars.ErrCodeInvalidRole,
				Reason:      fmt.Sprintf("unrecognized role claim %q", claim),
			})
			return nil, exceptions.ErrInvalidRole(nil, claim)
		}
		role = claim
	case u.isAllowlistedAdmin(principal.Email):
		role = constvars.ClinicdeskRoleAdmin
	default:
		chainProfile, err := u.ProfileResolver.Resolve(ctx, principal.ID)
		if err != nil {
			return nil, exceptions.ErrRoleServiceFailure(err)
		}
		if chainProfile != nil {
			role = chainProfile.Role
			profile = chainProfile
		} else {
			role = constvars.ClinicdeskRoleClient
		}
	}

	// When the role came from a claim or the allowlist the profile is a
	// nicety, not a gate: a store failure here is logged and swallowed.
	if profile == nil {
		storeProfile, err := u.ProfileResolver.ResolveForRole(ctx, role, principal.ID)
		if err != nil {
			u.Log.Warn("identityResolverUsecase.Resolve profile fetch failed, continuing without profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRoleKey, role),
				zap.Error(err),
			)
			u.publishAudit(ctx, &contracts.AuditEvent{
				Event:       constvars.AuditEventProfileFetchFailed,
				RequestID:   requestID,
				PrincipalID: principal.ID,
				Role:        role,
				Reason:      err.Error(),
			})
		} else {
			profile = storeProfile
		}
	}

	// The clinicians table has no email column; the principal's is
	// authoritative anyway.
	if profile != nil && profile.Email == "" {
		profile.Email = principal.Email
	}

	u.publishAudit(ctx, &contracts.AuditEvent{
		Event:       constvars.AuditEventRoleResolved,
		RequestID:   requestID,
		PrincipalID: principal.ID,
		Role:        role,
	})

	return &models.ResolvedIdentity{
		Principal: principal,
		Role:      role,
		Profile:   profile,
	}, nil
}

func (u *identityResolverUsecase) isAllowlistedAdmin(email string) bool {
	if email == "" {
		return false
	}
	_, ok := u.AdminAllowlist[strings.ToLower(email)]
	return ok
}

func (u *identityResolverUsecase) publishAudit(ctx context.Context, event *contracts.AuditEvent) {
	if u.AuditPublisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	if err := u.AuditPublisher.Publish(ctx, event); err != nil {
		u.Log.Warn("identityResolverUsecase audit publish failed",
			zap.String("event", event.Event),
			zap.Error(err),
		)
	}
}

func isKnownRole(role string) bool {
	switch role {
	case constvars.ClinicdeskRoleClient, constvars.ClinicdeskRoleClinician, constvars.ClinicdeskRoleAdmin:
		return true
	}
	return false
}
