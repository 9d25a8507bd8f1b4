package profiles

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type adminPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	adminPostgresRepositoryInstance contracts.ProfileProvider
	onceAdminPostgresRepository     sync.Once
)

func NewAdminPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ProfileProvider {
	onceAdminPostgresRepository.Do(func() {
		instance := &adminPostgresRepository{
			DB:  db,
			Log: logger,
		}
		adminPostgresRepositoryInstance = instance
	})
	return adminPostgresRepositoryInstance
}

func (r *adminPostgresRepository) Role() string {
	return constvars.ClinicdeskRoleAdmin
}

func (r *adminPostgresRepository) TryResolve(ctx context.Context, principalID string) (*models.Profile, error) {
	var (
		userID string
		email  sql.NullString
		name   sql.NullString
		phone  sql.NullString
	)

	err := r.DB.QueryRowContext(ctx, queries.FindAdminByUserID, principalID).
		Scan(&userID, &email, &name, &phone)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return &models.Profile{
		ID:          userID,
		Email:       email.String,
		DisplayName: strings.TrimSpace(name.String),
		Phone:       phone.String,
		UserType:    constvars.UserTypeAdmin,
		Role:        constvars.ClinicdeskRoleAdmin,
	}, nil
}
