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

type clinicianPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	clinicianPostgresRepositoryInstance contracts.ProfileProvider
	onceClinicianPostgresRepository     sync.Once
)

func NewClinicianPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ProfileProvider {
	onceClinicianPostgresRepository.Do(func() {
		instance := &clinicianPostgresRepository{
			DB:  db,
			Log: logger,
		}
		clinicianPostgresRepositoryInstance = instance
	})
	return clinicianPostgresRepositoryInstance
}

func (r *clinicianPostgresRepository) Role() string {
	return constvars.ClinicdeskRoleClinician
}

// TryResolve normalizes a clinicians row. The table carries no email
// column; the resolver back-fills Email from the principal afterwards.
func (r *clinicianPostgresRepository) TryResolve(ctx context.Context, principalID string) (*models.Profile, error) {
	var (
		userID        string
		name          sql.NullString
		specialty     sql.NullString
		phone         sql.NullString
		licenseNumber sql.NullString
		isActive      sql.NullBool
	)

	err := r.DB.QueryRowContext(ctx, queries.FindClinicianByUserID, principalID).
		Scan(&userID, &name, &specialty, &phone, &licenseNumber, &isActive)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return &models.Profile{
		ID:          userID,
		DisplayName: strings.TrimSpace(name.String),
		Phone:       phone.String,
		Specialty:   specialty.String,
		UserType:    constvars.UserTypeClinician,
		Role:        constvars.ClinicdeskRoleClinician,
	}, nil
}
