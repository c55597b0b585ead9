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

type AppointmentController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	InternalConfig *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateAppointment)
	if !ctrl.decodeAndValidate(w, r, request) {
		return
	}

	response, err := ctrl.BookingUsecase.CreateAppointment(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentCreatedSuccess, response)
}

func (ctrl *AppointmentController) CheckSlot(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CheckSlot)
	if !ctrl.decodeAndValidate(w, r, request) {
		return
	}

	response, err := ctrl.BookingUsecase.CheckSlot(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	message := constvars.AppointmentSlotFreeSuccess
	if !response.Available {
		message = constvars.AppointmentSlotTakenSuccess
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, response)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdateAppointmentStatus)
	if !ctrl.decodeAndValidate(w, r, request) {
		return
	}

	response, err := ctrl.BookingUsecase.UpdateAppointmentStatus(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentStatusUpdatedSuccess, response)
}

func (ctrl *AppointmentController) Reschedule(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RescheduleAppointment)
	if !ctrl.decodeAndValidate(w, r, request) {
		return
	}

	response, err := ctrl.BookingUsecase.RescheduleAppointment(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentRescheduledSuccess, response)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	response, err := ctrl.BookingUsecase.CancelAppointment(r.Context(), appointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCancelledSuccess, response)
}

// decodeAndValidate fills request from the body and the appointment id URL
// param, writing the error response itself on failure.
func (ctrl *AppointmentController) decodeAndValidate(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := utils.DecodeJSONBody(r, request, ctrl.InternalConfig.App.RequestBodyLimitInMegabyte); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return false
	}

	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	switch req := request.(type) {
	case *requests.CreateAppointment:
		utils.SanitizeCreateAppointmentRequest(req)
	case *requests.CheckSlot:
		utils.SanitizeCheckSlotRequest(req)
	case *requests.UpdateAppointmentStatus:
		req.AppointmentID = appointmentID
		utils.SanitizeUpdateAppointmentStatusRequest(req)
	case *requests.RescheduleAppointment:
		req.AppointmentID = appointmentID
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}
