package schedules

import (
	"context"
	"fmt"
	"sort"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
	now                func() time.Time
}

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	return &scheduleUsecase{
		ScheduleRepository: scheduleRepository,
		InternalConfig:     internalConfig,
		Log:                logger,
		now:                time.Now,
	}
}

func (uc *scheduleUsecase) GetSchedule(ctx context.Context, professionalID string) (*responses.WorkingSchedule, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.GetSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, professionalID),
	)

	schedule, err := uc.ScheduleRepository.FindByProfessionalID(ctx, professionalID)
	if err != nil {
		uc.Log.Error("scheduleUsecase.GetSchedule error fetching schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if schedule == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "working schedule")
	}

	response := schedule.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleUsecase) UpsertSchedule(ctx context.Context, request *requests.UpsertWorkingSchedule) (*responses.WorkingSchedule, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleUsecase.UpsertSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
	)

	schedule, err := BuildWorkingSchedule(request)
	if err != nil {
		uc.Log.Warn("scheduleUsecase.UpsertSchedule rejected schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := uc.ScheduleRepository.FindByProfessionalID(ctx, request.ProfessionalID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	if existing != nil {
		schedule.CreatedAt = existing.CreatedAt
		schedule.SetUpdatedAt(now)
	} else {
		schedule.SetCreatedAtUpdatedAt(now)
	}

	if err := uc.ScheduleRepository.Upsert(ctx, schedule); err != nil {
		uc.Log.Error("scheduleUsecase.UpsertSchedule error saving schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("scheduleUsecase.UpsertSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, schedule.ProfessionalID),
	)
	response := schedule.ConvertIntoResponse()
	return &response, nil
}

// BuildWorkingSchedule converts client weekday tokens into the canonical
// Monday-first index. Duplicate active days collapse; an override for an
// inactive day is kept but has no effect until the day is activated.
func BuildWorkingSchedule(request *requests.UpsertWorkingSchedule) (*models.WorkingSchedule, error) {
	schedule := &models.WorkingSchedule{ProfessionalID: request.ProfessionalID}

	window, err := parseWindow(request.DefaultWindow)
	if err != nil {
		return nil, err
	}
	schedule.Default = window

	seen := [7]bool{}
	for _, token := range request.ActiveDays {
		weekday, ok := models.ParseWeekday(string(token))
		if !ok {
			return nil, exceptions.ErrInputValidation(fmt.Errorf("%w: %q", models.ErrInvalidWeekday, token))
		}
		if !seen[weekday] {
			seen[weekday] = true
			schedule.ActiveDays = append(schedule.ActiveDays, weekday)
		}
	}
	sort.Slice(schedule.ActiveDays, func(i, j int) bool { return schedule.ActiveDays[i] < schedule.ActiveDays[j] })

	for token, raw := range request.Overrides {
		weekday, ok := models.ParseWeekday(string(token))
		if !ok {
			return nil, exceptions.ErrInputValidation(fmt.Errorf("%w: %q", models.ErrInvalidWeekday, token))
		}
		override, err := parseWindow(raw)
		if err != nil {
			return nil, err
		}
		schedule.Overrides[weekday] = &override
	}
	return schedule, nil
}

func parseWindow(raw requests.TimeWindow) (models.TimeWindow, error) {
	start, err := models.ParseClock(raw.Start)
	if err != nil {
		return models.TimeWindow{}, exceptions.ErrInputValidation(err)
	}
	end, err := models.ParseClock(raw.End)
	if err != nil {
		return models.TimeWindow{}, exceptions.ErrInputValidation(err)
	}
	if end < start {
		return models.TimeWindow{}, exceptions.ErrWindowCrossesMidnight(raw.Start, raw.End)
	}
	window := models.TimeWindow{Start: start, End: end}
	if !window.Valid() {
		return models.TimeWindow{}, exceptions.ErrInputValidation(models.ErrBlockInvalidWindow)
	}
	return window, nil
}
