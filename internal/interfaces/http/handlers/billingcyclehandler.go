package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/catalog/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type BillingCycleHandler struct {
	createCycleUC  *usecases.CreateBillingCycleUseCase
	getCycleUC     *usecases.GetBillingCycleUseCase
	listCyclesUC   *usecases.ListBillingCyclesUseCase
	updateCycleUC  *usecases.UpdateBillingCycleUseCase
	archiveCycleUC *usecases.ArchiveBillingCycleUseCase
	deleteCycleUC  *usecases.DeleteBillingCycleUseCase
	logger         logger.Interface
}

func NewBillingCycleHandler(
	createCycleUC *usecases.CreateBillingCycleUseCase,
	getCycleUC *usecases.GetBillingCycleUseCase,
	listCyclesUC *usecases.ListBillingCyclesUseCase,
	updateCycleUC *usecases.UpdateBillingCycleUseCase,
	archiveCycleUC *usecases.ArchiveBillingCycleUseCase,
	deleteCycleUC *usecases.DeleteBillingCycleUseCase,
) *BillingCycleHandler {
	return &BillingCycleHandler{
		createCycleUC:  createCycleUC,
		getCycleUC:     getCycleUC,
		listCyclesUC:   listCyclesUC,
		updateCycleUC:  updateCycleUC,
		archiveCycleUC: archiveCycleUC,
		deleteCycleUC:  deleteCycleUC,
		logger:         logger.NewLogger(),
	}
}

type CreateBillingCycleRequest struct {
	Key               string  `json:"key" binding:"required,resourcekey"`
	DisplayName       string  `json:"display_name" binding:"required"`
	Description       string  `json:"description"`
	DurationValue     *int    `json:"duration_value"`
	DurationUnit      string  `json:"duration_unit" binding:"required,oneof=days weeks months years forever"`
	ExternalProductID *string `json:"external_product_id"`
}

type UpdateBillingCycleRequest struct {
	DisplayName       *string `json:"display_name"`
	Description       *string `json:"description"`
	ExternalProductID *string `json:"external_product_id"`
}

func (h *BillingCycleHandler) CreateBillingCycle(c *gin.Context) {
	var req CreateBillingCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create billing cycle", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreateBillingCycleCommand{
		PlanKey:           c.Param("key"),
		Key:               req.Key,
		DisplayName:       req.DisplayName,
		Description:       req.Description,
		DurationValue:     req.DurationValue,
		DurationUnit:      req.DurationUnit,
		ExternalProductID: req.ExternalProductID,
	}

	result, err := h.createCycleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Billing cycle created successfully")
}

func (h *BillingCycleHandler) GetBillingCycle(c *gin.Context) {
	result, err := h.getCycleUC.Execute(c.Request.Context(), usecases.GetBillingCycleQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *BillingCycleHandler) ListBillingCycles(c *gin.Context) {
	result, err := h.listCyclesUC.Execute(c.Request.Context(), usecases.ListBillingCyclesQuery{
		PlanKey: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *BillingCycleHandler) UpdateBillingCycle(c *gin.Context) {
	var req UpdateBillingCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update billing cycle", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdateBillingCycleCommand{
		Key:               c.Param("key"),
		DisplayName:       req.DisplayName,
		Description:       req.Description,
		ExternalProductID: req.ExternalProductID,
	}

	if err := h.updateCycleUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Billing cycle updated successfully", nil)
}

func (h *BillingCycleHandler) ArchiveBillingCycle(c *gin.Context) {
	err := h.archiveCycleUC.Execute(c.Request.Context(), usecases.ArchiveBillingCycleCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Billing cycle archived successfully", nil)
}

func (h *BillingCycleHandler) UnarchiveBillingCycle(c *gin.Context) {
	err := h.archiveCycleUC.Execute(c.Request.Context(), usecases.ArchiveBillingCycleCommand{
		Key:       c.Param("key"),
		Unarchive: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Billing cycle unarchived successfully", nil)
}

func (h *BillingCycleHandler) DeleteBillingCycle(c *gin.Context) {
	err := h.deleteCycleUC.Execute(c.Request.Context(), usecases.DeleteBillingCycleCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
