package controllers

import (
	"context"
	"net/http"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/responses"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by the Mongo and Redis health probes wired in bootstrap.
type Pinger func(ctx context.Context) error

type HealthController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Checks         map[string]Pinger
}

func NewHealthController(logger *zap.Logger, internalConfig *config.InternalConfig, checks map[string]Pinger) *HealthController {
	return &HealthController{
		Log:            logger,
		InternalConfig: internalConfig,
		Checks:         checks,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, check := range ctrl.Checks {
		name, check := name, check
		g.Go(func() error {
			if err := check(gctx); err != nil {
				ctrl.Log.Warn("HealthController.Health dependency unhealthy", zap.String("dependency", name), zap.Error(err))
				return err
			}
			return nil
		})
	}

	response := responses.Health{Status: "ok", Version: ctrl.InternalConfig.App.Version}
	code := constvars.StatusOK
	if err := g.Wait(); err != nil {
		response.Status = "degraded"
		code = constvars.StatusServiceUnavailable
	}
	utils.BuildSuccessResponse(w, code, response.Status, response)
}
