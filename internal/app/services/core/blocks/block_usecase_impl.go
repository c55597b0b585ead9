package blocks

import (
	"context"
	"errors"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/app/services/shared/metrics"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Open bounds used when a block listing omits from or to.
const (
	earliestDate models.Date = "0001-01-01"
	latestDate   models.Date = "9999-12-31"
)

type blockUsecase struct {
	BlockRepository contracts.BlockRepository
	SnapshotStorage contracts.SnapshotStorage
	Metrics         *metrics.AvailabilityMetrics
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
	now             func() time.Time
}

func NewBlockUsecase(
	blockRepository contracts.BlockRepository,
	snapshotStorage contracts.SnapshotStorage,
	availabilityMetrics *metrics.AvailabilityMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BlockUsecase {
	return &blockUsecase{
		BlockRepository: blockRepository,
		SnapshotStorage: snapshotStorage,
		Metrics:         availabilityMetrics,
		InternalConfig:  internalConfig,
		Log:             logger,
		now:             time.Now,
	}
}

func (uc *blockUsecase) CreateBlock(ctx context.Context, request *requests.CreateAvailabilityBlock) (*responses.AvailabilityBlock, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("blockUsecase.CreateBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
		zap.String(constvars.LoggingBlockKindKey, request.Kind),
	)

	block, err := buildInternalBlock(request)
	if err != nil {
		uc.Log.Warn("blockUsecase.CreateBlock rejected block",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	block.ID = utils.GenerateID()
	block.SetCreatedAtUpdatedAt(uc.now().UTC())

	if err := uc.BlockRepository.Insert(ctx, block); err != nil {
		uc.Log.Error("blockUsecase.CreateBlock error inserting block",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("blockUsecase.CreateBlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, block.ID),
	)
	response := block.ConvertIntoResponse()
	return &response, nil
}

func (uc *blockUsecase) ListBlocks(ctx context.Context, request *requests.ListAvailabilityBlocks) ([]responses.AvailabilityBlock, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("blockUsecase.ListBlocks called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
	)

	from, to := earliestDate, latestDate
	if request.From != "" {
		from = models.Date(request.From)
	}
	if request.To != "" {
		to = models.Date(request.To)
	}
	if to.Before(from) {
		return nil, exceptions.ErrQueryParamInvalid(models.ErrBlockEndBeforeStart, constvars.QueryParamTo)
	}

	blocks, err := uc.BlockRepository.FindByProfessionalBetween(ctx, request.ProfessionalID, from, to)
	if err != nil {
		uc.Log.Error("blockUsecase.ListBlocks error fetching blocks",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.AvailabilityBlock, 0, len(blocks))
	for i := range blocks {
		response = append(response, blocks[i].ConvertIntoResponse())
	}
	uc.Log.Info("blockUsecase.ListBlocks succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBlocksCountKey, len(response)),
	)
	return response, nil
}

// DeleteBlock removes an internal block. External blocks belong to the
// calendar they were synced from and are only removed by sync.
func (uc *blockUsecase) DeleteBlock(ctx context.Context, professionalID, blockID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("blockUsecase.DeleteBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, professionalID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)

	block, err := uc.BlockRepository.FindByID(ctx, blockID)
	if err != nil {
		return err
	}
	if block == nil || block.ProfessionalID != professionalID {
		return exceptions.ErrResourceNotFound(nil, "availability block")
	}
	if block.Source == models.BlockSourceExternal {
		return exceptions.ErrBlockManagedExternally(blockID)
	}

	if err := uc.BlockRepository.DeleteByID(ctx, blockID); err != nil {
		uc.Log.Error("blockUsecase.DeleteBlock error deleting block",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// PruneExpiredBlocks deletes blocks that stopped matching more than the
// retention period ago.
func (uc *blockUsecase) PruneExpiredBlocks(ctx context.Context, now time.Time) (int64, error) {
	location := uc.InternalConfig.App.Location()
	cutoff := models.DateOf(now.In(location)).AddDays(-uc.InternalConfig.Housekeeping.RetentionDays)

	deleted, err := uc.BlockRepository.DeleteExpired(ctx, cutoff)
	if err != nil {
		uc.Log.Error("blockUsecase.PruneExpiredBlocks error deleting expired blocks",
			zap.String(constvars.LoggingDateKey, cutoff.String()),
			zap.Error(err),
		)
		return 0, err
	}
	uc.Metrics.ObserveBlocksPruned(deleted)
	uc.Log.Info("blockUsecase.PruneExpiredBlocks succeeded",
		zap.String(constvars.LoggingDateKey, cutoff.String()),
		zap.Int64(constvars.LoggingDeletedCountKey, deleted),
	)
	return deleted, nil
}

func buildInternalBlock(request *requests.CreateAvailabilityBlock) (*models.AvailabilityBlock, error) {
	block := &models.AvailabilityBlock{
		ProfessionalID: request.ProfessionalID,
		Kind:           models.BlockKind(request.Kind),
		Source:         models.BlockSourceInternal,
		Reason:         request.Reason,
	}

	switch block.Kind {
	case models.BlockKindFullDay:
		block.StartDate = models.Date(request.StartDate)
		block.EndDate = models.Date(request.EndDate)
	case models.BlockKindTimeRange:
		block.Date = models.Date(request.Date)
	case models.BlockKindRecurringWeekly:
		weekday, ok := models.ParseWeekday(string(request.Weekday))
		if !ok {
			return nil, exceptions.ErrInputValidation(models.ErrInvalidWeekday)
		}
		block.Weekday = weekday
		block.StartDate = models.Date(request.StartDate)
		block.EndDate = models.Date(request.EndDate)
	}

	if block.Kind != models.BlockKindFullDay {
		start, err := models.ParseClock(request.StartTime)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		end, err := models.ParseClock(request.EndTime)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		block.Window = models.TimeWindow{Start: start, End: end}
	}

	if err := block.Validate(); err != nil {
		if errors.Is(err, models.ErrBlockCrossesMidnight) {
			return nil, exceptions.ErrWindowCrossesMidnight(request.StartTime, request.EndTime)
		}
		return nil, exceptions.ErrInputValidation(err)
	}
	return block, nil
}
