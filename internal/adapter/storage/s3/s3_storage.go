package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Maron09/Product-Store/internal/platform/logger"
)

// S3Storage keeps uploaded product images in a MinIO bucket and returns
// the public URL of each stored object.
type S3Storage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log logger.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucketName)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make bucket %s: %w", bucketName, err)
		}
	}

	return &S3Storage{client: client, bucket: bucketName, log: log}, nil
}

func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", objectKey, err)
	}

	s.log.Debugf("uploaded image %s (%d bytes)", objectKey, len(data))
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}
