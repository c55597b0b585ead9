package blocks

import (
	"context"
	"errors"
	"testing"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBlockUsecase(repo *mocks.MockBlockRepository, storage *mocks.MockSnapshotStorage) *blockUsecase {
	cfg := &config.InternalConfig{
		App:          config.App{Timezone: "UTC"},
		CalendarSync: config.CalendarSync{SnapshotBucket: "calendar-sync"},
		Housekeeping: config.Housekeeping{RetentionDays: 30},
	}
	uc := NewBlockUsecase(repo, storage, nil, cfg, zap.NewNop()).(*blockUsecase)
	uc.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	return uc
}

func TestBlockUsecase_CreateBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("time range", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(b *models.AvailabilityBlock) bool {
			return b.ID != "" && b.Source == models.BlockSourceInternal && b.Window.String() == "12:00-13:00"
		})).Return(nil)

		resp, err := uc.CreateBlock(ctx, &requests.CreateAvailabilityBlock{
			ProfessionalID: "pro-1",
			Kind:           "time_range",
			Date:           "2024-03-05",
			StartTime:      "12:00",
			EndTime:        "13:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "internal", resp.Source)
		assert.Equal(t, "2024-03-05", resp.Date)
		repo.AssertExpectations(t)
	})

	t.Run("recurring weekly accepts a weekday name", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(b *models.AvailabilityBlock) bool {
			return b.Weekday == models.Wednesday
		})).Return(nil)

		resp, err := uc.CreateBlock(ctx, &requests.CreateAvailabilityBlock{
			ProfessionalID: "pro-1",
			Kind:           "recurring_weekly",
			Weekday:        "Wed",
			StartTime:      "08:00",
			EndTime:        "09:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "wednesday", resp.Weekday)
	})

	t.Run("time range crossing midnight is rejected", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)

		_, err := uc.CreateBlock(ctx, &requests.CreateAvailabilityBlock{
			ProfessionalID: "pro-1",
			Kind:           "time_range",
			Date:           "2024-03-05",
			StartTime:      "22:00",
			EndTime:        "02:00",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, exceptions.ErrInvalidInput)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 422, customErr.StatusCode)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("full day range backwards", func(t *testing.T) {
		uc := newTestBlockUsecase(new(mocks.MockBlockRepository), nil)
		_, err := uc.CreateBlock(ctx, &requests.CreateAvailabilityBlock{
			ProfessionalID: "pro-1",
			Kind:           "full_day",
			StartDate:      "2024-03-05",
			EndDate:        "2024-03-01",
		})
		assert.ErrorIs(t, err, exceptions.ErrInvalidInput)
	})
}

func TestBlockUsecase_DeleteBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("external block is refused", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("FindByID", mock.Anything, "b-1").Return(&models.AvailabilityBlock{
			ID: "b-1", ProfessionalID: "pro-1", Source: models.BlockSourceExternal,
		}, nil)

		err := uc.DeleteBlock(ctx, "pro-1", "b-1")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 403, customErr.StatusCode)
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("block of another professional is not found", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("FindByID", mock.Anything, "b-1").Return(&models.AvailabilityBlock{
			ID: "b-1", ProfessionalID: "pro-2", Source: models.BlockSourceInternal,
		}, nil)

		assert.ErrorIs(t, uc.DeleteBlock(ctx, "pro-1", "b-1"), exceptions.ErrNotFound)
	})

	t.Run("internal block is deleted", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("FindByID", mock.Anything, "b-1").Return(&models.AvailabilityBlock{
			ID: "b-1", ProfessionalID: "pro-1", Source: models.BlockSourceInternal,
		}, nil)
		repo.On("DeleteByID", mock.Anything, "b-1").Return(nil)

		require.NoError(t, uc.DeleteBlock(ctx, "pro-1", "b-1"))
		repo.AssertExpectations(t)
	})
}

func TestExpandBusyPeriod(t *testing.T) {
	t.Run("timed period across midnight is split per day", func(t *testing.T) {
		blocks, err := ExpandBusyPeriod("pro-1", "cal-1", requests.BusyPeriod{
			ExternalID: "evt-1",
			Start:      "2024-03-05T22:00",
			End:        "2024-03-06T02:00",
		})
		require.NoError(t, err)
		require.Len(t, blocks, 2)

		assert.Equal(t, models.Date("2024-03-05"), blocks[0].Date)
		assert.Equal(t, "22:00-24:00", blocks[0].Window.String())
		assert.Equal(t, models.Date("2024-03-06"), blocks[1].Date)
		assert.Equal(t, "00:00-02:00", blocks[1].Window.String())
		for _, b := range blocks {
			assert.Equal(t, models.BlockSourceExternal, b.Source)
			assert.NoError(t, b.Validate())
		}
		assert.NotEqual(t, blocks[0].ID, blocks[1].ID)
	})

	t.Run("ending at midnight adds no empty block", func(t *testing.T) {
		blocks, err := ExpandBusyPeriod("pro-1", "cal-1", requests.BusyPeriod{
			ExternalID: "evt-2",
			Start:      "2024-03-05T20:00",
			End:        "2024-03-06T00:00",
		})
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "20:00-24:00", blocks[0].Window.String())
	})

	t.Run("all day end is exclusive", func(t *testing.T) {
		blocks, err := ExpandBusyPeriod("pro-1", "cal-1", requests.BusyPeriod{
			ExternalID: "evt-3",
			Start:      "2024-03-05",
			End:        "2024-03-06",
			AllDay:     true,
		})
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, models.BlockKindFullDay, blocks[0].Kind)
		assert.Equal(t, models.Date("2024-03-05"), blocks[0].StartDate)
		assert.True(t, blocks[0].EndDate.IsZero())
	})

	t.Run("ids are stable", func(t *testing.T) {
		period := requests.BusyPeriod{ExternalID: "evt-4", Start: "2024-03-05T09:00", End: "2024-03-05T10:00"}
		first, err := ExpandBusyPeriod("pro-1", "cal-1", period)
		require.NoError(t, err)
		second, err := ExpandBusyPeriod("pro-1", "cal-1", period)
		require.NoError(t, err)
		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := ExpandBusyPeriod("pro-1", "cal-1", requests.BusyPeriod{
			ExternalID: "evt-5",
			Start:      "2024-03-05T10:00",
			End:        "2024-03-05T09:00",
		})
		assert.Error(t, err)
	})
}

func TestBlockUsecase_SyncExternalBlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("replace upserts periods and prunes the rest", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("UpsertMany", mock.Anything, mock.MatchedBy(func(blocks []models.AvailabilityBlock) bool {
			return len(blocks) == 2
		})).Return(nil)
		repo.On("DeleteExternalExcept", mock.Anything, "pro-1", "cal-1", mock.MatchedBy(func(ids []string) bool {
			return len(ids) == 2
		})).Return(int64(3), nil)

		result, err := uc.SyncExternalBlocks(ctx, &requests.CalendarSyncMessage{
			ProfessionalID: "pro-1",
			CalendarID:     "cal-1",
			Mode:           requests.CalendarSyncModeReplace,
			Periods: []requests.BusyPeriod{
				{ExternalID: "evt-1", Start: "2024-03-05T09:00", End: "2024-03-05T10:00"},
				{ExternalID: "evt-2", Start: "2024-03-07", End: "2024-03-09", AllDay: true},
				{ExternalID: "evt-3", Start: "garbage", End: "2024-03-05T10:00"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Upserted)
		assert.Equal(t, int64(3), result.Removed)
		repo.AssertExpectations(t)
	})

	t.Run("remove drops the whole calendar", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		uc := newTestBlockUsecase(repo, nil)
		repo.On("DeleteExternalExcept", mock.Anything, "pro-1", "cal-1", []string(nil)).Return(int64(4), nil)

		result, err := uc.SyncExternalBlocks(ctx, &requests.CalendarSyncMessage{
			ProfessionalID: "pro-1",
			CalendarID:     "cal-1",
			Mode:           requests.CalendarSyncModeRemove,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Removed)
		repo.AssertNotCalled(t, "UpsertMany", mock.Anything, mock.Anything)
	})

	t.Run("snapshot periods come from object storage", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		storage := new(mocks.MockSnapshotStorage)
		uc := newTestBlockUsecase(repo, storage)
		storage.On("GetObject", mock.Anything, "calendar-sync", "pro-1/cal-1.json").
			Return([]byte(`[{"external_id":"evt-9","start":"2024-03-05T09:00","end":"2024-03-05T11:00"}]`), nil)
		repo.On("UpsertMany", mock.Anything, mock.MatchedBy(func(blocks []models.AvailabilityBlock) bool {
			return len(blocks) == 1 && blocks[0].ExternalID == "evt-9"
		})).Return(nil)
		repo.On("DeleteExternalExcept", mock.Anything, "pro-1", "cal-1", mock.Anything).Return(int64(0), nil)

		result, err := uc.SyncExternalBlocks(ctx, &requests.CalendarSyncMessage{
			ProfessionalID: "pro-1",
			CalendarID:     "cal-1",
			Mode:           requests.CalendarSyncModeReplace,
			SnapshotObject: "pro-1/cal-1.json",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Upserted)
	})

	t.Run("storage failure aborts before any write", func(t *testing.T) {
		repo := new(mocks.MockBlockRepository)
		storage := new(mocks.MockSnapshotStorage)
		uc := newTestBlockUsecase(repo, storage)
		storage.On("GetObject", mock.Anything, "calendar-sync", "missing.json").Return(nil, errors.New("no such key"))

		_, err := uc.SyncExternalBlocks(ctx, &requests.CalendarSyncMessage{
			ProfessionalID: "pro-1",
			CalendarID:     "cal-1",
			Mode:           requests.CalendarSyncModeReplace,
			SnapshotObject: "missing.json",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpsertMany", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "DeleteExternalExcept", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid message", func(t *testing.T) {
		uc := newTestBlockUsecase(new(mocks.MockBlockRepository), nil)
		_, err := uc.SyncExternalBlocks(ctx, &requests.CalendarSyncMessage{ProfessionalID: "pro-1", Mode: "merge"})
		assert.ErrorIs(t, err, exceptions.ErrInvalidInput)
	})
}

func TestBlockUsecase_PruneExpiredBlocks(t *testing.T) {
	repo := new(mocks.MockBlockRepository)
	uc := newTestBlockUsecase(repo, nil)
	repo.On("DeleteExpired", mock.Anything, models.Date("2024-02-01")).Return(int64(5), nil)

	deleted, err := uc.PruneExpiredBlocks(context.Background(), time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
