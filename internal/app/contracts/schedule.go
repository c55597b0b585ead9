package contracts

import (
	"context"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
)

type ScheduleRepository interface {
	// FindByProfessionalID returns nil, nil when the professional has no schedule.
	FindByProfessionalID(ctx context.Context, professionalID string) (*models.WorkingSchedule, error)
	Upsert(ctx context.Context, schedule *models.WorkingSchedule) error
}

type ScheduleUsecase interface {
	GetSchedule(ctx context.Context, professionalID string) (*responses.WorkingSchedule, error)
	UpsertSchedule(ctx context.Context, request *requests.UpsertWorkingSchedule) (*responses.WorkingSchedule, error)
}
