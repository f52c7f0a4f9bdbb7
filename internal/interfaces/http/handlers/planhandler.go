package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/catalog/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC         *usecases.CreatePlanUseCase
	getPlanUC            *usecases.GetPlanUseCase
	listPlansUC          *usecases.ListPlansUseCase
	updatePlanUC         *usecases.UpdatePlanUseCase
	archivePlanUC        *usecases.ArchivePlanUseCase
	deletePlanUC         *usecases.DeletePlanUseCase
	setTransitionCycleUC *usecases.SetTransitionCycleUseCase
	setPlanFeatureUC     *usecases.SetPlanFeatureUseCase
	removePlanFeatureUC  *usecases.RemovePlanFeatureUseCase
	listPlanFeaturesUC   *usecases.ListPlanFeaturesUseCase
	logger               logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	archivePlanUC *usecases.ArchivePlanUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
	setTransitionCycleUC *usecases.SetTransitionCycleUseCase,
	setPlanFeatureUC *usecases.SetPlanFeatureUseCase,
	removePlanFeatureUC *usecases.RemovePlanFeatureUseCase,
	listPlanFeaturesUC *usecases.ListPlanFeaturesUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:         createPlanUC,
		getPlanUC:            getPlanUC,
		listPlansUC:          listPlansUC,
		updatePlanUC:         updatePlanUC,
		archivePlanUC:        archivePlanUC,
		deletePlanUC:         deletePlanUC,
		setTransitionCycleUC: setTransitionCycleUC,
		setPlanFeatureUC:     setPlanFeatureUC,
		removePlanFeatureUC:  removePlanFeatureUC,
		listPlanFeaturesUC:   listPlanFeaturesUC,
		logger:               logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	ProductKey  string                 `json:"product_key" binding:"required"`
	Key         string                 `json:"key" binding:"required,resourcekey"`
	DisplayName string                 `json:"display_name" binding:"required"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdatePlanRequest struct {
	DisplayName *string                `json:"display_name"`
	Description *string                `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type SetTransitionCycleRequest struct {
	// A null billing_cycle_key clears the transition target.
	BillingCycleKey *string `json:"billing_cycle_key"`
}

type SetPlanFeatureRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreatePlanCommand{
		ProductKey:  req.ProductKey,
		Key:         req.Key,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	result, err := h.getPlanUC.Execute(c.Request.Context(), usecases.GetPlanQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	q := usecases.ListPlansQuery{
		ProductKey: c.Query("product_key"),
		Status:     c.Query("status"),
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pagination.Page, pagination.PageSize),
			query.WithSort(c.Query("sort_by"), c.Query("sort_order")),
		),
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total, pagination.Page, pagination.PageSize)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdatePlanCommand{
		Key:         c.Param("key"),
		DisplayName: req.DisplayName,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	if err := h.updatePlanUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", nil)
}

func (h *PlanHandler) ArchivePlan(c *gin.Context) {
	err := h.archivePlanUC.Execute(c.Request.Context(), usecases.ArchivePlanCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan archived successfully", nil)
}

func (h *PlanHandler) UnarchivePlan(c *gin.Context) {
	err := h.archivePlanUC.Execute(c.Request.Context(), usecases.ArchivePlanCommand{
		Key:       c.Param("key"),
		Unarchive: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan unarchived successfully", nil)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	err := h.deletePlanUC.Execute(c.Request.Context(), usecases.DeletePlanCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PlanHandler) SetTransitionCycle(c *gin.Context) {
	var req SetTransitionCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set transition cycle", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.SetTransitionCycleCommand{
		PlanKey:         c.Param("key"),
		BillingCycleKey: req.BillingCycleKey,
	}

	if err := h.setTransitionCycleUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transition cycle updated successfully", nil)
}

func (h *PlanHandler) SetFeature(c *gin.Context) {
	var req SetPlanFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set plan feature", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.SetPlanFeatureCommand{
		PlanKey:    c.Param("key"),
		FeatureKey: c.Param("featureKey"),
		Value:      req.Value,
	}

	result, err := h.setPlanFeatureUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan feature value set successfully", result)
}

func (h *PlanHandler) RemoveFeature(c *gin.Context) {
	err := h.removePlanFeatureUC.Execute(c.Request.Context(), usecases.RemovePlanFeatureCommand{
		PlanKey:    c.Param("key"),
		FeatureKey: c.Param("featureKey"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PlanHandler) ListFeatures(c *gin.Context) {
	result, err := h.listPlanFeaturesUC.Execute(c.Request.Context(), usecases.ListPlanFeaturesQuery{
		PlanKey: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
