package contracts

import (
	"context"
	"io"
	"time"

	"clinicdesk-service/internal/pkg/dto/responses"
)

// StoredObjectInfo describes one object in the documents bucket. The
// struct lives in the responses package to keep it importable from both
// sides without a contracts<->responses cycle.
type StoredObjectInfo = responses.StoredObjectInfo

// StorageService is the object-store surface the file usecase needs. It
// performs no access-control decisions of its own.
type StorageService interface {
	UploadObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	RemoveObject(ctx context.Context, key string) error
	ListObjects(ctx context.Context, prefix string) ([]StoredObjectInfo, error)
	StatObject(ctx context.Context, key string) (*StoredObjectInfo, error)
}
