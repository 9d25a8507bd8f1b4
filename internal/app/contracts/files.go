package contracts

import (
	"context"
	"io"

	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/dto/responses"
)

// FileUsecase is the resource-access surface for clinical documents.
// Route guards have already checked roles by the time these run; the
// usecase re-derives nothing, it only adds the key-scoped ownership
// check that route middlewares cannot see.
type FileUsecase interface {
	UploadFile(ctx context.Context, identity *models.ResolvedIdentity, patientID, filename, contentType string, reader io.Reader, size int64) (*responses.UploadFileResponse, error)
	GetDownloadURL(ctx context.Context, identity *models.ResolvedIdentity, key string) (*responses.DownloadURLResponse, error)
	DeleteFile(ctx context.Context, identity *models.ResolvedIdentity, key string) error
	ListPatientFiles(ctx context.Context, identity *models.ResolvedIdentity, patientID string) (*responses.ListFilesResponse, error)
}
