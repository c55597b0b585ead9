package contracts

import (
	"context"
	"wellness-availability-service/internal/pkg/dto/requests"
)

type EventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, event *requests.AppointmentEvent) error
}

type SnapshotStorage interface {
	GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error)
}
