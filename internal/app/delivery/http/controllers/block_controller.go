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

type BlockController struct {
	Log            *zap.Logger
	BlockUsecase   contracts.BlockUsecase
	InternalConfig *config.InternalConfig
}

func NewBlockController(logger *zap.Logger, blockUsecase contracts.BlockUsecase, internalConfig *config.InternalConfig) *BlockController {
	return &BlockController{
		Log:            logger,
		BlockUsecase:   blockUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *BlockController) CreateBlock(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateAvailabilityBlock)
	if err := utils.DecodeJSONBody(r, request, ctrl.InternalConfig.App.RequestBodyLimitInMegabyte); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.ProfessionalID = chi.URLParam(r, constvars.URLParamProfessionalID)
	utils.SanitizeCreateAvailabilityBlockRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := ctrl.BlockUsecase.CreateBlock(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BlockCreatedSuccess, response)
}

func (ctrl *BlockController) ListBlocks(w http.ResponseWriter, r *http.Request) {
	request := &requests.ListAvailabilityBlocks{
		ProfessionalID: chi.URLParam(r, constvars.URLParamProfessionalID),
		From:           r.URL.Query().Get(constvars.QueryParamFrom),
		To:             r.URL.Query().Get(constvars.QueryParamTo),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := ctrl.BlockUsecase.ListBlocks(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BlockListSuccess, response)
}

func (ctrl *BlockController) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, constvars.URLParamProfessionalID)
	blockID := chi.URLParam(r, constvars.URLParamBlockID)

	if err := ctrl.BlockUsecase.DeleteBlock(r.Context(), professionalID, blockID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BlockDeletedSuccess, nil)
}
