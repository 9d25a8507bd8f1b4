package identity

import (
	"context"
	"errors"
	"testing"

	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockProfileResolver struct {
	mock.Mock
}

func (m *mockProfileResolver) Resolve(ctx context.Context, principalID string) (*models.Profile, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileResolver) ResolveForRole(ctx context.Context, role, principalID string) (*models.Profile, error) {
	args := m.Called(ctx, role, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type mockAuditPublisher struct {
	mock.Mock
}

func (m *mockAuditPublisher) Publish(ctx context.Context, event *contracts.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestIdentityResolver(profileResolver contracts.ProfileResolver, auditPublisher contracts.AuditPublisher, allowlist ...string) *identityResolverUsecase {
	emails := make(map[string]struct{}, len(allowlist))
	for _, email := range allowlist {
		emails[email] = struct{}{}
	}
	return &identityResolverUsecase{
		ProfileResolver: profileResolver,
		AuditPublisher:  auditPublisher,
		AdminAllowlist:  emails,
		Log:             zap.NewNop(),
	}
}

func TestIdentityResolverResolve(t *testing.T) {
	principal := func(id, email, appRole, userRole string) *models.Principal {
		return &models.Principal{
			ID:           id,
			Email:        email,
			AppMetadata:  models.RoleMetadata{Role: appRole},
			UserMetadata: models.RoleMetadata{Role: userRole},
		}
	}

	t.Run("claim role wins and profile is attached", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleClinician, "user-1").
			Return(&models.Profile{ID: "user-1", DisplayName: "Dr. Ruiz", Role: constvars.ClinicdeskRoleClinician}, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "ruiz@clinic.test", constvars.ClinicdeskRoleClinician, ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleClinician, identity.Role)
		assert.Equal(t, "Dr. Ruiz", identity.Profile.DisplayName)
		profileResolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("app metadata claim shadows user metadata claim", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleAdmin, "user-1").Return(nil, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "", constvars.ClinicdeskRoleAdmin, constvars.ClinicdeskRoleClient))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleAdmin, identity.Role)
	})

	t.Run("unrecognized claim is rejected, not coerced", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		_, err := resolver.Resolve(context.Background(), principal("user-1", "", "superuser", ""))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeInvalidRole, customErr.Code)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		profileResolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("allowlisted email resolves admin without a claim", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleAdmin, "user-1").Return(nil, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher, "ops@clinic.test")
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "Ops@Clinic.Test", "", ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleAdmin, identity.Role)
	})

	t.Run("store chain supplies the role when no claim exists", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("Resolve", mock.Anything, "user-1").
			Return(&models.Profile{ID: "user-1", Role: constvars.ClinicdeskRoleClinician}, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "someone@clinic.test", "", ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleClinician, identity.Role)
	})

	t.Run("no claim, no allowlist, no profile defaults to client", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("Resolve", mock.Anything, "user-1").Return(nil, nil)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleClient, "user-1").Return(nil, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "new@clinic.test", "", ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleClient, identity.Role)
		assert.Nil(t, identity.Profile)
	})

	t.Run("chain failure during role resolution is fatal", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("Resolve", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		_, err := resolver.Resolve(context.Background(), principal("user-1", "x@clinic.test", "", ""))

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeRoleServiceError, customErr.Code)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	})

	t.Run("profile fetch failure after claim role is non-fatal", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleClinician, "user-1").
			Return(nil, errors.New("connection refused"))
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "ruiz@clinic.test", constvars.ClinicdeskRoleClinician, ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleClinician, identity.Role)
		assert.Nil(t, identity.Profile)
	})

	t.Run("empty profile email is back-filled from the principal", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleClinician, "user-1").
			Return(&models.Profile{ID: "user-1", Role: constvars.ClinicdeskRoleClinician}, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "ruiz@clinic.test", constvars.ClinicdeskRoleClinician, ""))

		assert.NoError(t, err)
		assert.Equal(t, "ruiz@clinic.test", identity.Profile.Email)
	})

	t.Run("nil principal is not authenticated", func(t *testing.T) {
		resolver := newTestIdentityResolver(new(mockProfileResolver), new(mockAuditPublisher))
		_, err := resolver.Resolve(context.Background(), nil)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrCodeNotAuthenticated, customErr.Code)
	})

	t.Run("audit publish failure never fails resolution", func(t *testing.T) {
		profileResolver := new(mockProfileResolver)
		auditPublisher := new(mockAuditPublisher)
		profileResolver.On("Resolve", mock.Anything, "user-1").Return(nil, nil)
		profileResolver.On("ResolveForRole", mock.Anything, constvars.ClinicdeskRoleClient, "user-1").Return(nil, nil)
		auditPublisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

		resolver := newTestIdentityResolver(profileResolver, auditPublisher)
		identity, err := resolver.Resolve(context.Background(), principal("user-1", "x@clinic.test", "", ""))

		assert.NoError(t, err)
		assert.Equal(t, constvars.ClinicdeskRoleClient, identity.Role)
	})
}
