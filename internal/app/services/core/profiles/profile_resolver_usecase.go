package profiles

import (
	"context"
	"sync"

	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type profileResolverUsecase struct {
	Chain      []contracts.ProfileProvider
	AdminStore contracts.ProfileProvider
	Log        *zap.Logger
}

var (
	profileResolverUsecaseInstance contracts.ProfileResolver
	onceProfileResolverUsecase     sync.Once
)

// NewProfileResolverUsecase wires the fallback chain in its fixed order:
// the clinician store shadows the client store, so a principal present in
// both resolves as clinician every time. The admin store is reachable only
// through ResolveForRole.
func NewProfileResolverUsecase(
	clinicianStore contracts.ProfileProvider,
	clientStore contracts.ProfileProvider,
	adminStore contracts.ProfileProvider,
	logger *zap.Logger,
) contracts.ProfileResolver {
	onceProfileResolverUsecase.Do(func() {
		instance := &profileResolverUsecase{
			Chain:      []contracts.ProfileProvider{clinicianStore, clientStore},
			AdminStore: adminStore,
			Log:        logger,
		}
		profileResolverUsecaseInstance = instance
	})
	return profileResolverUsecaseInstance
}

func (u *profileResolverUsecase) Resolve(ctx context.Context, principalID string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	for _, provider := range u.Chain {
		profile, err := provider.TryResolve(ctx, principalID)
		if err != nil {
			u.Log.Error("profileResolverUsecase.Resolve store lookup failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("store", provider.Role()),
				zap.Error(err),
			)
			return nil, err
		}
		if profile != nil {
			return profile, nil
		}
	}
	return nil, nil
}

func (u *profileResolverUsecase) ResolveForRole(ctx context.Context, role, principalID string) (*models.Profile, error) {
	if role == constvars.ClinicdeskRoleAdmin {
		return u.AdminStore.TryResolve(ctx, principalID)
	}
	for _, provider := range u.Chain {
		if provider.Role() == role {
			return provider.TryResolve(ctx, principalID)
		}
	}
	return nil, exceptions.ErrInvalidRole(nil, role)
}
