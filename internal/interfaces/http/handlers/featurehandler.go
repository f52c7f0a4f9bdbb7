package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/catalog/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type FeatureHandler struct {
	createFeatureUC  *usecases.CreateFeatureUseCase
	getFeatureUC     *usecases.GetFeatureUseCase
	listFeaturesUC   *usecases.ListFeaturesUseCase
	updateFeatureUC  *usecases.UpdateFeatureUseCase
	archiveFeatureUC *usecases.ArchiveFeatureUseCase
	deleteFeatureUC  *usecases.DeleteFeatureUseCase
	logger           logger.Interface
}

func NewFeatureHandler(
	createFeatureUC *usecases.CreateFeatureUseCase,
	getFeatureUC *usecases.GetFeatureUseCase,
	listFeaturesUC *usecases.ListFeaturesUseCase,
	updateFeatureUC *usecases.UpdateFeatureUseCase,
	archiveFeatureUC *usecases.ArchiveFeatureUseCase,
	deleteFeatureUC *usecases.DeleteFeatureUseCase,
) *FeatureHandler {
	return &FeatureHandler{
		createFeatureUC:  createFeatureUC,
		getFeatureUC:     getFeatureUC,
		listFeaturesUC:   listFeaturesUC,
		updateFeatureUC:  updateFeatureUC,
		archiveFeatureUC: archiveFeatureUC,
		deleteFeatureUC:  deleteFeatureUC,
		logger:           logger.NewLogger(),
	}
}

type CreateFeatureRequest struct {
	Key          string                 `json:"key" binding:"required,resourcekey"`
	DisplayName  string                 `json:"display_name" binding:"required"`
	Description  string                 `json:"description"`
	ValueType    string                 `json:"value_type" binding:"required,oneof=toggle numeric text"`
	DefaultValue string                 `json:"default_value"`
	GroupName    *string                `json:"group_name"`
	Metadata     map[string]interface{} `json:"metadata"`
}

type UpdateFeatureRequest struct {
	DisplayName  *string                `json:"display_name"`
	Description  *string                `json:"description"`
	DefaultValue *string                `json:"default_value"`
	GroupName    *string                `json:"group_name"`
	Metadata     map[string]interface{} `json:"metadata"`
}

func (h *FeatureHandler) CreateFeature(c *gin.Context) {
	var req CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create feature", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreateFeatureCommand{
		Key:          req.Key,
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		ValueType:    req.ValueType,
		DefaultValue: req.DefaultValue,
		GroupName:    req.GroupName,
		Metadata:     req.Metadata,
	}

	result, err := h.createFeatureUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Feature created successfully")
}

func (h *FeatureHandler) GetFeature(c *gin.Context) {
	result, err := h.getFeatureUC.Execute(c.Request.Context(), usecases.GetFeatureQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *FeatureHandler) ListFeatures(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	q := usecases.ListFeaturesQuery{
		Status: c.Query("status"),
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pagination.Page, pagination.PageSize),
			query.WithSort(c.Query("sort_by"), c.Query("sort_order")),
		),
	}
	if group := c.Query("group_name"); group != "" {
		q.GroupName = &group
	}

	result, err := h.listFeaturesUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Features, result.Total, pagination.Page, pagination.PageSize)
}

func (h *FeatureHandler) UpdateFeature(c *gin.Context) {
	var req UpdateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update feature", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdateFeatureCommand{
		Key:          c.Param("key"),
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		DefaultValue: req.DefaultValue,
		GroupName:    req.GroupName,
		Metadata:     req.Metadata,
	}

	result, err := h.updateFeatureUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature updated successfully", result)
}

func (h *FeatureHandler) ArchiveFeature(c *gin.Context) {
	err := h.archiveFeatureUC.Execute(c.Request.Context(), usecases.ArchiveFeatureCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature archived successfully", nil)
}

func (h *FeatureHandler) UnarchiveFeature(c *gin.Context) {
	err := h.archiveFeatureUC.Execute(c.Request.Context(), usecases.ArchiveFeatureCommand{
		Key:       c.Param("key"),
		Unarchive: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature unarchived successfully", nil)
}

func (h *FeatureHandler) DeleteFeature(c *gin.Context) {
	err := h.deleteFeatureUC.Execute(c.Request.Context(), usecases.DeleteFeatureCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
