package blocks

import (
	"context"
	"fmt"
	"time"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxPeriodDays caps how many per-day blocks one busy period may expand into.
const maxPeriodDays = 366

// SyncExternalBlocks reconciles the external blocks of one calendar with the
// busy periods in message. Replace upserts the periods and drops every other
// block of that calendar; remove drops them all.
func (uc *blockUsecase) SyncExternalBlocks(ctx context.Context, message *requests.CalendarSyncMessage) (*contracts.SyncResult, error) {
	logger := uc.Log.With(
		zap.String(constvars.LoggingProfessionalIDKey, message.ProfessionalID),
		zap.String(constvars.LoggingCalendarIDKey, message.CalendarID),
		zap.String(constvars.LoggingSyncModeKey, message.Mode),
	)
	logger.Info("blockUsecase.SyncExternalBlocks called")

	if err := utils.ValidateStruct(message); err != nil {
		uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseError)
		return nil, exceptions.ErrInputValidation(err)
	}

	result := &contracts.SyncResult{}
	if message.Mode == requests.CalendarSyncModeRemove {
		removed, err := uc.BlockRepository.DeleteExternalExcept(ctx, message.ProfessionalID, message.CalendarID, nil)
		if err != nil {
			uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseError)
			return nil, err
		}
		result.Removed = removed
		uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseSuccess)
		logger.Info("blockUsecase.SyncExternalBlocks removed calendar", zap.Int64(constvars.LoggingDeletedCountKey, removed))
		return result, nil
	}

	periods := message.Periods
	if message.SnapshotObject != "" {
		loaded, err := uc.loadSnapshot(ctx, message.SnapshotObject)
		if err != nil {
			uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseError)
			return nil, err
		}
		periods = loaded
	}

	now := uc.now().UTC()
	blocks := make([]models.AvailabilityBlock, 0, len(periods))
	seen := make(map[string]struct{}, len(periods))
	for _, period := range periods {
		expanded, err := ExpandBusyPeriod(message.ProfessionalID, message.CalendarID, period)
		if err != nil {
			logger.Warn("blockUsecase.SyncExternalBlocks skipping busy period",
				zap.String(constvars.LoggingExternalIDKey, period.ExternalID),
				zap.Error(err),
			)
			continue
		}
		for _, block := range expanded {
			if _, dup := seen[block.ID]; dup {
				continue
			}
			seen[block.ID] = struct{}{}
			block.SetCreatedAtUpdatedAt(now)
			blocks = append(blocks, block)
		}
	}

	if err := uc.BlockRepository.UpsertMany(ctx, blocks); err != nil {
		uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseError)
		return nil, err
	}
	keepIDs := make([]string, 0, len(blocks))
	for i := range blocks {
		keepIDs = append(keepIDs, blocks[i].ID)
	}
	removed, err := uc.BlockRepository.DeleteExternalExcept(ctx, message.ProfessionalID, message.CalendarID, keepIDs)
	if err != nil {
		uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseError)
		return nil, err
	}

	result.Upserted = len(blocks)
	result.Removed = removed
	uc.Metrics.ObserveSyncMessage(message.Mode, constvars.ResponseSuccess)
	logger.Info("blockUsecase.SyncExternalBlocks succeeded",
		zap.Int(constvars.LoggingPeriodsCountKey, len(periods)),
		zap.Int(constvars.LoggingBlocksCountKey, result.Upserted),
		zap.Int64(constvars.LoggingDeletedCountKey, removed),
	)
	return result, nil
}

func (uc *blockUsecase) loadSnapshot(ctx context.Context, object string) ([]requests.BusyPeriod, error) {
	bucket := uc.InternalConfig.CalendarSync.SnapshotBucket
	data, err := uc.SnapshotStorage.GetObject(ctx, bucket, object)
	if err != nil {
		uc.Log.Error("blockUsecase.loadSnapshot error fetching snapshot",
			zap.String(constvars.LoggingBucketKey, bucket),
			zap.String(constvars.LoggingObjectKey, object),
			zap.Error(err),
		)
		return nil, err
	}
	var periods []requests.BusyPeriod
	if err := json.Unmarshal(data, &periods); err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "calendar snapshot")
	}
	return periods, nil
}

// ExpandBusyPeriod turns one external busy period into blocks. All-day
// periods become a single full_day block; timed periods are split at each
// midnight into time_range blocks, since a time_range never crosses midnight.
func ExpandBusyPeriod(professionalID, calendarID string, period requests.BusyPeriod) ([]models.AvailabilityBlock, error) {
	base := models.AvailabilityBlock{
		ProfessionalID: professionalID,
		Source:         models.BlockSourceExternal,
		CalendarID:     calendarID,
		ExternalID:     period.ExternalID,
		Reason:         period.Summary,
	}

	if period.AllDay {
		start, err := models.ParseDate(period.Start)
		if err != nil {
			return nil, err
		}
		end, err := models.ParseDate(period.End)
		if err != nil {
			return nil, err
		}
		// End is exclusive for all-day periods.
		last := end.AddDays(-1)
		if last.Before(start) {
			last = start
		}
		block := base
		block.ID = externalBlockID(professionalID, calendarID, period.ExternalID, start)
		block.Kind = models.BlockKindFullDay
		block.StartDate = start
		if last != start {
			block.EndDate = last
		}
		return []models.AvailabilityBlock{block}, block.Validate()
	}

	start, err := time.Parse(constvars.LocalTimeLayout, period.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(constvars.LocalTimeLayout, period.End)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("busy period %s ends before it starts", period.ExternalID)
	}

	firstDate, lastDate := models.DateOf(start), models.DateOf(end)
	blocks := make([]models.AvailabilityBlock, 0, 1)
	for date, i := firstDate, 0; !date.After(lastDate); date, i = date.AddDays(1), i+1 {
		if i >= maxPeriodDays {
			return nil, fmt.Errorf("busy period %s spans more than %d days", period.ExternalID, maxPeriodDays)
		}
		window := models.TimeWindow{Start: models.StartOfDay, End: models.EndOfDay}
		if date == firstDate {
			window.Start = models.NewClock(start.Hour(), start.Minute())
		}
		if date == lastDate {
			window.End = models.NewClock(end.Hour(), end.Minute())
		}
		if !window.Valid() {
			// ends exactly at midnight
			continue
		}
		block := base
		block.ID = externalBlockID(professionalID, calendarID, period.ExternalID, date)
		block.Kind = models.BlockKindTimeRange
		block.Date = date
		block.Window = window
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// externalBlockID is stable across syncs so a replayed message rewrites the
// same documents.
func externalBlockID(professionalID, calendarID, externalID string, date models.Date) string {
	name := professionalID + "|" + calendarID + "|" + externalID + "|" + date.String()
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
