package storage

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorageService struct {
	Client     *minio.Client
	BucketName string
	Log        *zap.Logger
}

var (
	minioStorageServiceInstance contracts.StorageService
	onceMinioStorageService     sync.Once
)

func NewMinioStorageService(client *minio.Client, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.StorageService {
	onceMinioStorageService.Do(func() {
		instance := &minioStorageService{
			Client:     client,
			BucketName: internalConfig.Minio.BucketName,
			Log:        logger,
		}
		minioStorageServiceInstance = instance
	})
	return minioStorageServiceInstance
}

func (s *minioStorageService) UploadObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	_, err := s.Client.PutObject(ctx, s.BucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.Log.Error("minioStorageService.UploadObject error storing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("key", key),
			zap.Error(err),
		)
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}
	return nil
}

func (s *minioStorageService) PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	presignedURL, err := s.Client.PresignedGetObject(ctx, s.BucketName, key, expiry, url.Values{})
	if err != nil {
		s.Log.Error("minioStorageService.PresignedDownloadURL error presigning object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioPresignObject(err, s.BucketName)
	}
	return presignedURL.String(), nil
}

func (s *minioStorageService) RemoveObject(ctx context.Context, key string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := s.Client.RemoveObject(ctx, s.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.Log.Error("minioStorageService.RemoveObject error removing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("key", key),
			zap.Error(err),
		)
		return exceptions.ErrMinioRemoveObject(err, s.BucketName)
	}
	return nil
}

func (s *minioStorageService) ListObjects(ctx context.Context, prefix string) ([]contracts.StoredObjectInfo, error) {
	objects := make([]contracts.StoredObjectInfo, 0)
	for object := range s.Client.ListObjects(ctx, s.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, exceptions.ErrMinioListObjects(object.Err, s.BucketName)
		}
		objects = append(objects, contracts.StoredObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			ContentType:  object.ContentType,
			LastModified: object.LastModified,
		})
	}
	return objects, nil
}

func (s *minioStorageService) StatObject(ctx context.Context, key string) (*contracts.StoredObjectInfo, error) {
	info, err := s.Client.StatObject(ctx, s.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return nil, exceptions.ErrNotFound(err)
		}
		return nil, exceptions.ErrMinioListObjects(err, s.BucketName)
	}
	return &contracts.StoredObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}
