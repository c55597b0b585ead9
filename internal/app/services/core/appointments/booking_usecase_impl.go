package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/app/services/core/availability"
	"wellness-availability-service/internal/app/services/shared/metrics"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/dto/responses"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	operationCreate     = "create"
	operationReschedule = "reschedule"
	operationStatus     = "status"
)

type bookingUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Loader                *availability.SnapshotLoader
	LockService           contracts.LockerService
	EventPublisher        contracts.EventPublisher
	Metrics               *metrics.AvailabilityMetrics
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	scheduleRepository contracts.ScheduleRepository,
	blockRepository contracts.BlockRepository,
	lockService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	availabilityMetrics *metrics.AvailabilityMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		AppointmentRepository: appointmentRepository,
		Loader: &availability.SnapshotLoader{
			ScheduleRepository:    scheduleRepository,
			BlockRepository:       blockRepository,
			AppointmentRepository: appointmentRepository,
			Timeout:               internalConfig.Availability.ReadTimeout(),
		},
		LockService:    lockService,
		EventPublisher: eventPublisher,
		Metrics:        availabilityMetrics,
		InternalConfig: internalConfig,
		Log:            logger,
		now:            time.Now,
	}
}

func (uc *bookingUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	date, start, err := parseDateAndClock(request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBookingWindow(date, start); err != nil {
		return nil, err
	}

	status := models.AppointmentStatusPending
	if request.Status != "" {
		status = models.AppointmentStatus(request.Status)
	}
	appointment := &models.Appointment{
		ID:              utils.GenerateID(),
		ProfessionalID:  request.ProfessionalID,
		PatientID:       request.PatientID,
		ServiceID:       request.ServiceID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: request.DurationMinutes,
		Notes:           request.Notes,
	}
	appointment.SetStatus(status)
	appointment.SetCreatedAtUpdatedAt(uc.now().UTC())

	err = uc.guardedWrite(ctx, appointment, "", func(ctx context.Context) error {
		return uc.AppointmentRepository.Insert(ctx, appointment)
	})
	if err != nil {
		uc.Metrics.ObserveBookingWrite(operationCreate, constvars.ResponseError)
		uc.Log.Warn("bookingUsecase.CreateAppointment rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Metrics.ObserveBookingWrite(operationCreate, constvars.ResponseSuccess)
	uc.publish(ctx, constvars.EventAppointmentBooked, appointment)

	uc.Log.Info("bookingUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	response := appointment.ConvertIntoResponse()
	return &response, nil
}

// CheckSlot runs the same guard as a booking without taking the lock or
// writing. A conflict is reported in the result, not as an error.
func (uc *bookingUsecase) CheckSlot(ctx context.Context, request *requests.CheckSlot) (*responses.SlotCheck, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.CheckSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	date, start, err := parseDateAndClock(request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}
	candidate := &models.Appointment{
		ProfessionalID:  request.ProfessionalID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: request.DurationMinutes,
	}
	result := &responses.SlotCheck{
		Available: true,
		Date:      date.String(),
		StartTime: start.String(),
		EndTime:   candidate.EndTime().String(),
	}

	if err := checkSameDay(candidate); err != nil {
		return nil, err
	}
	snap, err := uc.Loader.Load(ctx, request.ProfessionalID, date, date)
	if err != nil {
		return nil, err
	}
	guardErr := availability.CheckCandidate(snap, candidate, request.ExcludeAppointmentID, uc.InternalConfig.Availability.EnforceWorkingHours)
	if guardErr != nil {
		var customErr *exceptions.CustomError
		if !errors.As(guardErr, &customErr) {
			return nil, guardErr
		}
		result.Available = false
		result.Reason = customErr.ClientMessage
	}

	uc.Log.Info("bookingUsecase.CheckSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingSuccessKey, result.Available),
	)
	return result, nil
}

func (uc *bookingUsecase) UpdateAppointmentStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.UpdateAppointmentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	found, err := uc.findAppointment(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}

	// The first read only locates the lock; the transition is decided on a
	// fresh read under it.
	next := models.AppointmentStatus(request.Status)
	var appointment *models.Appointment
	err = uc.withBookingLock(ctx, found.ProfessionalID, found.Date, func(ctx context.Context) error {
		current, err := uc.findAppointment(ctx, request.AppointmentID)
		if err != nil {
			return err
		}
		if current.Status.Terminal() {
			return exceptions.ErrAppointmentStatusLocked(current.ID, string(current.Status))
		}
		if !current.Status.CanTransitionTo(next) {
			return exceptions.ErrInvalidStatusTransition(string(current.Status), string(next))
		}

		// Every allowed transition keeps or releases the held time, so no
		// guard is needed here.
		current.SetStatus(next)
		current.SetUpdatedAt(uc.now().UTC())
		if err := uc.AppointmentRepository.Update(ctx, current); err != nil {
			return err
		}
		appointment = current
		return nil
	})
	if err != nil {
		uc.Metrics.ObserveBookingWrite(operationStatus, constvars.ResponseError)
		uc.Log.Warn("bookingUsecase.UpdateAppointmentStatus rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Metrics.ObserveBookingWrite(operationStatus, constvars.ResponseSuccess)

	event := constvars.EventAppointmentStatus
	if next == models.AppointmentStatusCancelled {
		event = constvars.EventAppointmentCancelled
	}
	uc.publish(ctx, event, appointment)

	response := appointment.ConvertIntoResponse()
	return &response, nil
}

func (uc *bookingUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	return uc.UpdateAppointmentStatus(ctx, &requests.UpdateAppointmentStatus{
		AppointmentID: appointmentID,
		Status:        string(models.AppointmentStatusCancelled),
	})
}

func (uc *bookingUsecase) RescheduleAppointment(ctx context.Context, request *requests.RescheduleAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bookingUsecase.RescheduleAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	existing, err := uc.findAppointment(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing.Status.Terminal() {
		return nil, exceptions.ErrAppointmentStatusLocked(existing.ID, string(existing.Status))
	}

	date, start, err := parseDateAndClock(request.Date, request.StartTime)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBookingWindow(date, start); err != nil {
		return nil, err
	}

	moved := *existing
	moved.Date = date
	moved.StartTime = start
	if request.DurationMinutes > 0 {
		moved.DurationMinutes = request.DurationMinutes
	}
	moved.SetUpdatedAt(uc.now().UTC())

	err = uc.guardedWrite(ctx, &moved, existing.ID, func(ctx context.Context) error {
		return uc.AppointmentRepository.Update(ctx, &moved)
	})
	if err != nil {
		uc.Metrics.ObserveBookingWrite(operationReschedule, constvars.ResponseError)
		uc.Log.Warn("bookingUsecase.RescheduleAppointment rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Metrics.ObserveBookingWrite(operationReschedule, constvars.ResponseSuccess)
	uc.publish(ctx, constvars.EventAppointmentRescheduled, &moved)

	response := moved.ConvertIntoResponse()
	return &response, nil
}

// guardedWrite runs write under the booking lock for the candidate's day,
// after re-reading the day and running the guard.
func (uc *bookingUsecase) guardedWrite(ctx context.Context, candidate *models.Appointment, excludeID string, write func(context.Context) error) error {
	if err := checkSameDay(candidate); err != nil {
		return err
	}
	return uc.withBookingLock(ctx, candidate.ProfessionalID, candidate.Date, func(ctx context.Context) error {
		snap, err := uc.Loader.Load(ctx, candidate.ProfessionalID, candidate.Date, candidate.Date)
		if err != nil {
			return err
		}
		if err := availability.CheckCandidate(snap, candidate, excludeID, uc.InternalConfig.Availability.EnforceWorkingHours); err != nil {
			uc.Metrics.ObserveGuardRejection(rejectionReason(err))
			return err
		}

		if err := write(ctx); err != nil {
			if errors.Is(err, exceptions.ErrPersistenceConflict) {
				uc.Metrics.ObserveGuardRejection(rejectionReason(err))
			}
			return err
		}
		return nil
	})
}

// withBookingLock serializes writers for one professional and date.
func (uc *bookingUsecase) withBookingLock(ctx context.Context, professionalID string, date models.Date, fn func(context.Context) error) error {
	key := fmt.Sprintf(constvars.BookingLockKeyFormat, professionalID, date)
	token, err := uc.acquireBookingLock(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("bookingUsecase.withBookingLock failed to release booking lock",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}()
	return fn(ctx)
}

func (uc *bookingUsecase) acquireBookingLock(ctx context.Context, key string) (string, error) {
	cfg := uc.InternalConfig.Availability
	attempts := cfg.LockRetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		acquired, token, err := uc.LockService.TryLock(ctx, key, cfg.LockTTL())
		if err != nil {
			uc.Metrics.ObserveLockAttempt(constvars.ResponseError)
			return "", err
		}
		if acquired {
			uc.Metrics.ObserveLockAttempt("acquired")
			return token, nil
		}
		uc.Metrics.ObserveLockAttempt("busy")
		uc.Log.Info("bookingUsecase.acquireBookingLock lock busy",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Int(constvars.LoggingLockAttemptKey, attempt),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", exceptions.ErrBookingLockNotAcquired(ctx.Err(), key, attempt)
		case <-time.After(cfg.LockRetryDelay()):
		}
	}
	return "", exceptions.ErrBookingLockNotAcquired(nil, key, attempts)
}

// checkBookingWindow rejects starts in the past and dates beyond the
// booking horizon, both judged in the clinic's timezone.
func (uc *bookingUsecase) checkBookingWindow(date models.Date, start models.Clock) error {
	now := uc.now().In(uc.InternalConfig.App.Location())
	today := models.DateOf(now)
	if date.Before(today) || (date == today && start < models.NewClock(now.Hour(), now.Minute())) {
		return exceptions.ErrBookingInThePast(date.String(), start.String())
	}
	horizon := uc.InternalConfig.Availability.BookingHorizonDays
	if horizon > 0 && date.After(today.AddDays(horizon)) {
		return exceptions.ErrBookingOutsideHorizon(date.String(), horizon)
	}
	return nil
}

func (uc *bookingUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "appointment")
	}
	return appointment, nil
}

// publish is best effort; the appointment is already stored.
func (uc *bookingUsecase) publish(ctx context.Context, event string, appointment *models.Appointment) {
	if uc.EventPublisher == nil {
		return
	}
	err := uc.EventPublisher.PublishAppointmentEvent(ctx, &requests.AppointmentEvent{
		Event:           event,
		AppointmentID:   appointment.ID,
		ProfessionalID:  appointment.ProfessionalID,
		PatientID:       appointment.PatientID,
		Date:            appointment.Date.String(),
		StartTime:       appointment.StartTime.String(),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		OccurredAt:      uc.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		uc.Log.Warn("bookingUsecase.publish failed to publish appointment event",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
	}
}

func parseDateAndClock(rawDate, rawStart string) (models.Date, models.Clock, error) {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return "", 0, exceptions.ErrInputValidation(err)
	}
	start, err := models.ParseClock(rawStart)
	if err != nil {
		return "", 0, exceptions.ErrInputValidation(err)
	}
	if start == models.EndOfDay {
		return "", 0, exceptions.ErrInputValidation(models.ErrInvalidClock)
	}
	return date, start, nil
}

// checkSameDay rejects appointments running past midnight; an appointment
// occupies time on its own date only.
func checkSameDay(candidate *models.Appointment) error {
	if candidate.EndTime() > models.EndOfDay {
		return exceptions.ErrWindowCrossesMidnight(candidate.StartTime.String(), candidate.EndTime().String())
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, exceptions.ErrPersistenceConflict):
		return "persistence_conflict"
	case errors.Is(err, exceptions.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, exceptions.ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, exceptions.ErrBlockedSlot):
		return "blocked"
	}
	return "other"
}
