package availability

import (
	"context"
	"fmt"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/app/services/shared/metrics"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	queryKindDay      = "day"
	queryKindCalendar = "calendar"
)

type availabilityUsecase struct {
	Loader         *SnapshotLoader
	Metrics        *metrics.AvailabilityMetrics
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewAvailabilityUsecase(
	scheduleRepository contracts.ScheduleRepository,
	blockRepository contracts.BlockRepository,
	appointmentRepository contracts.AppointmentRepository,
	availabilityMetrics *metrics.AvailabilityMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return &availabilityUsecase{
		Loader: &SnapshotLoader{
			ScheduleRepository:    scheduleRepository,
			BlockRepository:       blockRepository,
			AppointmentRepository: appointmentRepository,
			Timeout:               internalConfig.Availability.ReadTimeout(),
		},
		Metrics:        availabilityMetrics,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (uc *availabilityUsecase) AvailableSlots(ctx context.Context, query contracts.SlotQuery) (slots []models.Slot, err error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("availabilityUsecase.AvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, query.ProfessionalID),
		zap.String(constvars.LoggingDateKey, query.Date.String()),
	)
	started := time.Now()
	defer func() { uc.Metrics.ObserveQuery(queryKindDay, outcomeOf(err), time.Since(started)) }()

	query.DurationMinutes, query.GranularityMinutes, err = uc.normalizeLengths(query.DurationMinutes, query.GranularityMinutes)
	if err != nil {
		return nil, err
	}
	weekday, ok := query.Date.Weekday()
	if !ok {
		return nil, exceptions.ErrQueryParamInvalid(models.ErrInvalidDate, constvars.QueryParamDate)
	}

	snap, err := uc.Loader.Load(ctx, query.ProfessionalID, query.Date, query.Date)
	if err != nil {
		uc.Log.Error("availabilityUsecase.AvailableSlots error reading availability data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	candidates := GenerateCandidates(snap.Schedule, weekday, query.DurationMinutes, query.GranularityMinutes)
	slots = ClassifySlots(query.Date, candidates, query.DurationMinutes, snap.Blocks, BookedOn(query.Date, snap.Appointments, ""))
	uc.observeSlots(slots)

	uc.Log.Info("availabilityUsecase.AvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotsCountKey, len(slots)),
		zap.Int(constvars.LoggingBlocksCountKey, len(snap.Blocks)),
		zap.Int(constvars.LoggingAppointmentsKey, len(snap.Appointments)),
	)
	return slots, nil
}

func (uc *availabilityUsecase) AvailabilityCalendar(ctx context.Context, query contracts.CalendarQuery) (days []models.DayAvailability, err error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("availabilityUsecase.AvailabilityCalendar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, query.ProfessionalID),
		zap.String(constvars.LoggingDateKey, query.From.String()),
	)
	started := time.Now()
	defer func() { uc.Metrics.ObserveQuery(queryKindCalendar, outcomeOf(err), time.Since(started)) }()

	query.DurationMinutes, query.GranularityMinutes, err = uc.normalizeLengths(query.DurationMinutes, query.GranularityMinutes)
	if err != nil {
		return nil, err
	}
	if !query.From.Valid() {
		return nil, exceptions.ErrQueryParamInvalid(models.ErrInvalidDate, constvars.QueryParamFrom)
	}
	if query.Days == 0 {
		query.Days = constvars.DefaultAvailabilityRange
	}
	if query.Days < 1 || query.Days > constvars.MaxAvailabilityRangeDays {
		return nil, exceptions.ErrQueryParamInvalid(
			fmt.Errorf("days must be between 1 and %d", constvars.MaxAvailabilityRangeDays),
			constvars.QueryParamDays,
		)
	}

	to := query.From.AddDays(query.Days - 1)
	snap, err := uc.Loader.Load(ctx, query.ProfessionalID, query.From, to)
	if err != nil {
		uc.Log.Error("availabilityUsecase.AvailabilityCalendar error reading availability data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	days = make([]models.DayAvailability, 0, query.Days)
	for i := 0; i < query.Days; i++ {
		date := query.From.AddDays(i)
		weekday, _ := date.Weekday()

		var window *models.TimeWindow
		if w, ok := ResolveDayWindow(snap.Schedule, weekday); ok {
			window = &w
		}
		candidates := GenerateCandidates(snap.Schedule, weekday, query.DurationMinutes, query.GranularityMinutes)
		slots := ClassifySlots(date, candidates, query.DurationMinutes, snap.Blocks, BookedOn(date, snap.Appointments, ""))
		days = append(days, SummarizeDay(date, weekday, window, slots))
	}

	uc.Log.Info("availabilityUsecase.AvailabilityCalendar succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBlocksCountKey, len(snap.Blocks)),
		zap.Int(constvars.LoggingAppointmentsKey, len(snap.Appointments)),
	)
	return days, nil
}

func (uc *availabilityUsecase) normalizeLengths(duration, granularity int) (int, int, error) {
	if duration == 0 {
		duration = uc.InternalConfig.Availability.DefaultDurationMinutes
	}
	if granularity == 0 {
		granularity = uc.InternalConfig.Availability.DefaultGranularityMinutes
	}
	if duration < 1 || duration > constvars.MaxAppointmentMinutes {
		return 0, 0, exceptions.ErrQueryParamInvalid(
			fmt.Errorf("duration must be between 1 and %d minutes", constvars.MaxAppointmentMinutes),
			constvars.QueryParamDuration,
		)
	}
	if granularity < 1 || granularity > constvars.MinutesPerDay {
		return 0, 0, exceptions.ErrQueryParamInvalid(
			fmt.Errorf("granularity must be between 1 and %d minutes", constvars.MinutesPerDay),
			constvars.QueryParamGranularity,
		)
	}
	return duration, granularity, nil
}

func (uc *availabilityUsecase) observeSlots(slots []models.Slot) {
	counts := make(map[models.SlotStatus]int, 3)
	for _, s := range slots {
		counts[s.Status]++
	}
	for status, n := range counts {
		uc.Metrics.ObserveSlots(string(status), n)
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return constvars.ResponseError
	}
	return constvars.ResponseSuccess
}
