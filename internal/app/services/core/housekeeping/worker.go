package housekeeping

import (
	"context"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCronSpec = "@daily"
	leaderLockTTL   = 2 * time.Minute
)

// Worker prunes expired availability blocks on a cron schedule. Only the
// instance holding the leader lock runs a pass.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	blockUsecase contracts.BlockUsecase
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
	now          func() time.Time
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, blockUsecase contracts.BlockUsecase) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		blockUsecase: blockUsecase,
		now:          time.Now,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(w.cfg.App.Location()))
	spec := w.cfg.Housekeeping.CronSpec
	if spec == "" {
		spec = defaultCronSpec
	}
	if _, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("housekeeping.Worker invalid cron spec, falling back to @daily",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New(cron.WithLocation(w.cfg.App.Location()))
		_, _ = c.AddFunc(defaultCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("housekeeping.Worker started", zap.String(constvars.LoggingCronSpecKey, spec))
}

// Stop waits for a running pass to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single pass if this instance wins the leader lock.
func (w *Worker) RunOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.HousekeepingLeaderLockKey, leaderLockTTL)
	if err != nil {
		w.log.Warn("housekeeping.Worker leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("housekeeping.Worker leader lock held by another instance")
		return
	}
	defer func() {
		_ = w.locker.Unlock(context.WithoutCancel(ctx), constvars.HousekeepingLeaderLockKey, token)
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token)

	pruned, err := w.blockUsecase.PruneExpiredBlocks(ctx, w.now())
	if err != nil {
		w.log.Warn("housekeeping.Worker prune failed", zap.Error(err))
		return
	}
	w.log.Info("housekeeping.Worker pass finished", zap.Int64(constvars.LoggingDeletedCountKey, pruned))
}

func (w *Worker) refreshLeaderLock(ctx context.Context, token string) {
	tick := time.NewTicker(leaderLockTTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.HousekeepingLeaderLockKey, token, leaderLockTTL); err != nil {
				w.log.Warn("housekeeping.Worker failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}
