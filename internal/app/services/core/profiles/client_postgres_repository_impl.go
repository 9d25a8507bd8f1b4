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

type clientPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	clientPostgresRepositoryInstance contracts.ProfileProvider
	onceClientPostgresRepository     sync.Once
)

func NewClientPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ProfileProvider {
	onceClientPostgresRepository.Do(func() {
		instance := &clientPostgresRepository{
			DB:  db,
			Log: logger,
		}
		clientPostgresRepositoryInstance = instance
	})
	return clientPostgresRepositoryInstance
}

func (r *clientPostgresRepository) Role() string {
	return constvars.ClinicdeskRoleClient
}

func (r *clientPostgresRepository) TryResolve(ctx context.Context, principalID string) (*models.Profile, error) {
	var (
		userID    string
		email     sql.NullString
		firstName sql.NullString
		lastName  sql.NullString
		phone     sql.NullString
	)

	err := r.DB.QueryRowContext(ctx, queries.FindClientByUserID, principalID).
		Scan(&userID, &email, &firstName, &lastName, &phone)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return &models.Profile{
		ID:          userID,
		Email:       email.String,
		DisplayName: strings.TrimSpace(firstName.String + " " + lastName.String),
		Phone:       phone.String,
		UserType:    constvars.UserTypeClient,
		Role:        constvars.ClinicdeskRoleClient,
	}, nil
}
