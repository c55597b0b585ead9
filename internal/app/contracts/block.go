package contracts

import (
	"context"
	"time"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
)

type BlockRepository interface {
	FindByID(ctx context.Context, blockID string) (*models.AvailabilityBlock, error)
	// FindByProfessionalBetween returns every block that may match a date in
	// [from, to]. Callers still evaluate each block per date.
	FindByProfessionalBetween(ctx context.Context, professionalID string, from, to models.Date) ([]models.AvailabilityBlock, error)
	Insert(ctx context.Context, block *models.AvailabilityBlock) error
	DeleteByID(ctx context.Context, blockID string) error
	UpsertMany(ctx context.Context, blocks []models.AvailabilityBlock) error
	DeleteExternalExcept(ctx context.Context, professionalID, calendarID string, keepIDs []string) (int64, error)
	DeleteExpired(ctx context.Context, cutoff models.Date) (int64, error)
}

type SyncResult struct {
	Upserted int
	Removed  int64
}

type BlockUsecase interface {
	CreateBlock(ctx context.Context, request *requests.CreateAvailabilityBlock) (*responses.AvailabilityBlock, error)
	ListBlocks(ctx context.Context, request *requests.ListAvailabilityBlocks) ([]responses.AvailabilityBlock, error)
	DeleteBlock(ctx context.Context, professionalID, blockID string) error
	SyncExternalBlocks(ctx context.Context, message *requests.CalendarSyncMessage) (*SyncResult, error)
	PruneExpiredBlocks(ctx context.Context, now time.Time) (int64, error)
}
