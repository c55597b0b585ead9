package controllers

import (
	"net/http"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/app/services/core/availability"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/responses"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	InternalConfig      *config.InternalConfig
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, internalConfig *config.InternalConfig) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		InternalConfig:      internalConfig,
	}
}

// GetAvailability lists bookable slots for one date. With include=all every
// candidate is returned with its status.
func (ctrl *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, constvars.URLParamProfessionalID)
	query := r.URL.Query()

	date, err := models.ParseDate(query.Get(constvars.QueryParamDate))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamInvalid(err, constvars.QueryParamDate))
		return
	}
	duration, err := utils.QueryInt(r, constvars.QueryParamDuration, ctrl.InternalConfig.Availability.DefaultDurationMinutes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	granularity, err := utils.QueryInt(r, constvars.QueryParamGranularity, ctrl.InternalConfig.Availability.DefaultGranularityMinutes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	slots, err := ctrl.AvailabilityUsecase.AvailableSlots(r.Context(), contracts.SlotQuery{
		ProfessionalID:     professionalID,
		Date:               date,
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
	})
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if query.Get(constvars.QueryParamInclude) != constvars.QueryParamIncludeAll {
		slots = availability.FilterAvailable(slots)
	}

	response := responses.Availability{
		ProfessionalID:     professionalID,
		Date:               date.String(),
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
		Slots:              make([]responses.Slot, 0, len(slots)),
	}
	for _, slot := range slots {
		response.Slots = append(response.Slots, slot.ConvertIntoResponse())
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AvailabilityGetSuccess, response)
}

func (ctrl *AvailabilityController) GetAvailabilityCalendar(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, constvars.URLParamProfessionalID)

	from, err := models.ParseDate(r.URL.Query().Get(constvars.QueryParamFrom))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamInvalid(err, constvars.QueryParamFrom))
		return
	}
	days, err := utils.QueryInt(r, constvars.QueryParamDays, constvars.DefaultAvailabilityRange)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	duration, err := utils.QueryInt(r, constvars.QueryParamDuration, ctrl.InternalConfig.Availability.DefaultDurationMinutes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	granularity, err := utils.QueryInt(r, constvars.QueryParamGranularity, ctrl.InternalConfig.Availability.DefaultGranularityMinutes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	calendar, err := ctrl.AvailabilityUsecase.AvailabilityCalendar(r.Context(), contracts.CalendarQuery{
		ProfessionalID:     professionalID,
		From:               from,
		Days:               days,
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
	})
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := responses.AvailabilityCalendar{
		ProfessionalID:  professionalID,
		From:            from.String(),
		Days:            days,
		DurationMinutes: duration,
		Calendar:        make([]responses.DayAvailability, 0, len(calendar)),
	}
	for _, day := range calendar {
		response.Calendar = append(response.Calendar, day.ConvertIntoResponse())
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AvailabilityCalendarGetSuccess, response)
}
