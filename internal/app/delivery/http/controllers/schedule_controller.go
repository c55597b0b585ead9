package controllers

import (
	"net/http"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
	InternalConfig  *config.InternalConfig
}

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase, internalConfig *config.InternalConfig) *ScheduleController {
	return &ScheduleController{
		Log:             logger,
		ScheduleUsecase: scheduleUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, constvars.URLParamProfessionalID)

	response, err := ctrl.ScheduleUsecase.GetSchedule(r.Context(), professionalID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleGetSuccess, response)
}

func (ctrl *ScheduleController) UpsertSchedule(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpsertWorkingSchedule)
	if err := utils.DecodeJSONBody(r, request, ctrl.InternalConfig.App.RequestBodyLimitInMegabyte); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.ProfessionalID = chi.URLParam(r, constvars.URLParamProfessionalID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := ctrl.ScheduleUsecase.UpsertSchedule(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleUpdatedSuccess, response)
}
