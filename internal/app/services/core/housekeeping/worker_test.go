package housekeeping

import (
	"context"
	"errors"
	"testing"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/mocks"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestWorker() (*Worker, *mocks.MockLockerService, *mocks.MockBlockUsecase) {
	locker := new(mocks.MockLockerService)
	blocks := new(mocks.MockBlockUsecase)
	cfg := &config.InternalConfig{App: config.App{Timezone: "UTC"}}
	w := NewWorker(zap.NewNop(), cfg, locker, blocks)
	w.now = func() time.Time { return time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC) }
	return w, locker, blocks
}

func TestWorker_RunOnce(t *testing.T) {
	t.Run("leader prunes and releases", func(t *testing.T) {
		w, locker, blocks := newTestWorker()
		locker.On("TryLock", mock.Anything, constvars.HousekeepingLeaderLockKey, leaderLockTTL).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, constvars.HousekeepingLeaderLockKey, "tok").Return(nil)
		blocks.On("PruneExpiredBlocks", mock.Anything, w.now()).Return(int64(4), nil)

		w.RunOnce(context.Background())

		locker.AssertExpectations(t)
		blocks.AssertExpectations(t)
	})

	t.Run("follower does nothing", func(t *testing.T) {
		w, locker, blocks := newTestWorker()
		locker.On("TryLock", mock.Anything, constvars.HousekeepingLeaderLockKey, leaderLockTTL).Return(false, "", nil)

		w.RunOnce(context.Background())

		blocks.AssertNotCalled(t, "PruneExpiredBlocks", mock.Anything, mock.Anything)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lock error skips the pass", func(t *testing.T) {
		w, locker, blocks := newTestWorker()
		locker.On("TryLock", mock.Anything, constvars.HousekeepingLeaderLockKey, leaderLockTTL).Return(false, "", errors.New("redis down"))

		w.RunOnce(context.Background())

		blocks.AssertNotCalled(t, "PruneExpiredBlocks", mock.Anything, mock.Anything)
	})

	t.Run("prune failure still releases the lock", func(t *testing.T) {
		w, locker, blocks := newTestWorker()
		locker.On("TryLock", mock.Anything, constvars.HousekeepingLeaderLockKey, leaderLockTTL).Return(true, "tok", nil)
		locker.On("Unlock", mock.Anything, constvars.HousekeepingLeaderLockKey, "tok").Return(nil)
		blocks.On("PruneExpiredBlocks", mock.Anything, mock.Anything).Return(int64(0), errors.New("mongo down"))

		w.RunOnce(context.Background())

		locker.AssertCalled(t, "Unlock", mock.Anything, constvars.HousekeepingLeaderLockKey, "tok")
	})
}

func TestWorker_StartStop(t *testing.T) {
	w, _, _ := newTestWorker()
	w.cfg.Housekeeping.CronSpec = "not a spec"
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
