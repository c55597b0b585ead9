package storage

import (
	"context"
	"io"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxSnapshotBytes bounds a calendar snapshot read into memory.
const maxSnapshotBytes = 16 << 20

type minioStorage struct {
	MinioClient *minio.Client
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, logger *zap.Logger) contracts.SnapshotStorage {
	return &minioStorage{
		MinioClient: minioClient,
		Log:         logger,
	}
}

func (m *minioStorage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	m.Log.Info("minioStorage.GetObject called",
		zap.String(constvars.LoggingBucketKey, bucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	object, err := m.MinioClient.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err)
	}
	defer object.Close()

	data, err := io.ReadAll(io.LimitReader(object, maxSnapshotBytes))
	if err != nil {
		return nil, exceptions.ErrMinioReadObject(err)
	}
	return data, nil
}
