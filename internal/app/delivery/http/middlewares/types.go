package middlewares

import (
	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log                *zap.Logger
	AuthProviderClient contracts.AuthProviderClient
	IdentityResolver   contracts.IdentityResolver
	AuditPublisher     contracts.AuditPublisher
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	authProviderClient contracts.AuthProviderClient,
	identityResolver contracts.IdentityResolver,
	auditPublisher contracts.AuditPublisher,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:                logger,
		AuthProviderClient: authProviderClient,
		IdentityResolver:   identityResolver,
		AuditPublisher:     auditPublisher,
		RedisRepository:    redisRepository,
		InternalConfig:     internalConfig,
	}
}
