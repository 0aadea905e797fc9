package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MediaStore implements domain.MediaStore on MinIO. Stored paths are
// bucket-relative object keys of the form <category>/<ownerID>/<uuid><ext>.
type MediaStore struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMediaStore creates the MinIO client and ensures the bucket exists.
func NewMediaStore(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*MediaStore, error) {
	log.Info("Initializing MinIO media store",
		zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	return &MediaStore{
		client: client,
		bucket: bucketName,
		logger: log.Named("MediaStore"),
	}, nil
}

// Store uploads the file under the owner's logical folder and returns the
// object key.
func (s *MediaStore) Store(ctx context.Context, file domain.FileUpload, ownerID uint, category string) (string, error) {
	ext := filepath.Ext(file.Name)
	objectKey := fmt.Sprintf("%s/%d/%s%s", category, ownerID, uuid.New().String(), ext)

	s.logger.Debug("Uploading file",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectKey),
		zap.String("original_filename", file.Name),
		zap.Int("size_bytes", len(file.Data)))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(file.Data), int64(len(file.Data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(file.Data),
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}
	return objectKey, nil
}

// StoreReplacing uploads the file and removes the superseded file at oldPath
// as part of the same upload. An empty oldPath behaves like Store.
func (s *MediaStore) StoreReplacing(ctx context.Context, file domain.FileUpload, ownerID uint, category string, oldPath string) (string, error) {
	objectKey, err := s.Store(ctx, file, ownerID, category)
	if err != nil {
		return "", err
	}
	if oldPath != "" {
		if _, err := s.Delete(ctx, oldPath); err != nil {
			// The new file is already in place; the stale one is only
			// orphaned, so the upload still succeeds.
			s.logger.Warn("Failed to remove superseded file", zap.String("old_path", oldPath), zap.Error(err))
		}
	}
	return objectKey, nil
}

// Delete removes a previously stored file, reporting whether it existed.
func (s *MediaStore) Delete(ctx context.Context, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", path, err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("RemoveObject failed", zap.String("path", path), zap.Error(err))
		return false, fmt.Errorf("failed to remove object %s: %w", path, err)
	}
	s.logger.Debug("Removed stored file", zap.String("path", path))
	return true, nil
}
