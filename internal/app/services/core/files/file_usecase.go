package files

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/dto/requests"
	"clinicdesk-service/internal/pkg/dto/responses"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type fileUsecase struct {
	StorageService contracts.StorageService
	AuditPublisher contracts.AuditPublisher
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	fileUsecaseInstance contracts.FileUsecase
	onceFileUsecase     sync.Once
)

func NewFileUsecase(
	storageService contracts.StorageService,
	auditPublisher contracts.AuditPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.FileUsecase {
	onceFileUsecase.Do(func() {
		instance := &fileUsecase{
			StorageService: storageService,
			AuditPublisher: auditPublisher,
			InternalConfig: internalConfig,
			Log:            logger,
		}
		fileUsecaseInstance = instance
	})
	return fileUsecaseInstance
}

func (u *fileUsecase) UploadFile(ctx context.Context, identity *models.ResolvedIdentity, patientID, filename, contentType string, reader io.Reader, size int64) (*responses.UploadFileResponse, error) {
	request := requests.UploadFileRequest{
		PatientID: patientID,
		Filename:  filename,
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	maxBytes := u.InternalConfig.Minio.UploadMaxSizeInMB * 1024 * 1024
	if size > maxBytes {
		return nil, exceptions.ErrFileTooLarge(fmt.Errorf("file is %d bytes, limit is %d", size, maxBytes))
	}

	key := utils.GenerateFileObjectKey(patientID, filename)
	if err := u.StorageService.UploadObject(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	return &responses.UploadFileResponse{
		Key:       key,
		PatientID: patientID,
		Size:      size,
	}, nil
}

func (u *fileUsecase) GetDownloadURL(ctx context.Context, identity *models.ResolvedIdentity, key string) (*responses.DownloadURLResponse, error) {
	ref, err := u.checkKeyAccess(ctx, identity, key)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(u.InternalConfig.Minio.PresignedURLExpMinutes) * time.Minute
	presignedURL, err := u.StorageService.PresignedDownloadURL(ctx, ref.Key, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.DownloadURLResponse{
		Key:              ref.Key,
		URL:              presignedURL,
		ExpiresInSeconds: int(expiry.Seconds()),
	}, nil
}

func (u *fileUsecase) DeleteFile(ctx context.Context, identity *models.ResolvedIdentity, key string) error {
	ref, err := u.checkKeyAccess(ctx, identity, key)
	if err != nil {
		return err
	}

	// Removing a key that is already gone is not an error worth surfacing;
	// StatObject first so a missing file reports 404.
	if _, err := u.StorageService.StatObject(ctx, ref.Key); err != nil {
		return err
	}
	return u.StorageService.RemoveObject(ctx, ref.Key)
}

func (u *fileUsecase) ListPatientFiles(ctx context.Context, identity *models.ResolvedIdentity, patientID string) (*responses.ListFilesResponse, error) {
	prefix := fmt.Sprintf("%s/%s/", constvars.FileObjectKeyPrefix, patientID)
	objects, err := u.StorageService.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	return &responses.ListFilesResponse{
		PatientID: patientID,
		Files:     objects,
	}, nil
}

// checkKeyAccess parses the key and runs the ownership decision for
// key-addressed routes, where the owning patient is only visible after the
// key is split. Denials raise an audit event before returning.
func (u *fileUsecase) checkKeyAccess(ctx context.Context, identity *models.ResolvedIdentity, key string) (models.FileObjectRef, error) {
	if key == "" {
		return models.FileObjectRef{}, exceptions.ErrFileKeyMissing(nil)
	}
	ref, err := models.ParseFileObjectKey(key)
	if err != nil {
		return models.FileObjectRef{}, exceptions.ErrFileKeyMalformed(err)
	}

	decision := models.CheckOwnership(identity, ref.PatientID)
	if !decision.Allowed {
		u.publishDenial(ctx, identity, decision)
		switch decision.ErrorCode {
		case constvars.ErrCodeForbiddenRole:
			return models.FileObjectRef{}, exceptions.ErrForbiddenRole(fmt.Errorf("%s", decision.Reason))
		case constvars.ErrCodeNotAuthenticated:
			return models.FileObjectRef{}, exceptions.ErrNotAuthenticated(fmt.Errorf("%s", decision.Reason))
		default:
			return models.FileObjectRef{}, exceptions.ErrForbiddenOwnership(fmt.Errorf("%s", decision.Reason))
		}
	}
	return ref, nil
}

func (u *fileUsecase) publishDenial(ctx context.Context, identity *models.ResolvedIdentity, decision models.AccessDecision) {
	if u.AuditPublisher == nil {
		return
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := &contracts.AuditEvent{
		Event:      constvars.AuditEventAuthDenied,
		RequestID:  requestID,
		ErrorCode:  decision.ErrorCode,
		Reason:     decision.Reason,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if identity != nil && identity.Principal != nil {
		event.PrincipalID = identity.Principal.ID
		event.Role = identity.Role
	}
	if err := u.AuditPublisher.Publish(ctx, event); err != nil {
		u.Log.Warn("fileUsecase audit publish failed", zap.Error(err))
	}
}
