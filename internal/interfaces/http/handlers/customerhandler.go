package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/customer/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type CustomerHandler struct {
	createCustomerUC  *usecases.CreateCustomerUseCase
	getCustomerUC     *usecases.GetCustomerUseCase
	listCustomersUC   *usecases.ListCustomersUseCase
	updateCustomerUC  *usecases.UpdateCustomerUseCase
	archiveCustomerUC *usecases.ArchiveCustomerUseCase
	deleteCustomerUC  *usecases.DeleteCustomerUseCase
	logger            logger.Interface
}

func NewCustomerHandler(
	createCustomerUC *usecases.CreateCustomerUseCase,
	getCustomerUC *usecases.GetCustomerUseCase,
	listCustomersUC *usecases.ListCustomersUseCase,
	updateCustomerUC *usecases.UpdateCustomerUseCase,
	archiveCustomerUC *usecases.ArchiveCustomerUseCase,
	deleteCustomerUC *usecases.DeleteCustomerUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		createCustomerUC:  createCustomerUC,
		getCustomerUC:     getCustomerUC,
		listCustomersUC:   listCustomersUC,
		updateCustomerUC:  updateCustomerUC,
		archiveCustomerUC: archiveCustomerUC,
		deleteCustomerUC:  deleteCustomerUC,
		logger:            logger.NewLogger(),
	}
}

type CreateCustomerRequest struct {
	Key         string                 `json:"key" binding:"required,resourcekey"`
	DisplayName string                 `json:"display_name" binding:"required"`
	Email       *string                `json:"email" binding:"omitempty,email"`
	ExternalID  *string                `json:"external_id"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateCustomerRequest struct {
	DisplayName *string                `json:"display_name"`
	Email       *string                `json:"email" binding:"omitempty,email"`
	ExternalID  *string                `json:"external_id"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create customer", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreateCustomerCommand{
		Key:         req.Key,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		ExternalID:  req.ExternalID,
		Metadata:    req.Metadata,
	}

	result, err := h.createCustomerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Customer created successfully")
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	result, err := h.getCustomerUC.Execute(c.Request.Context(), usecases.GetCustomerQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	q := usecases.ListCustomersQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pagination.Page, pagination.PageSize),
			query.WithSort(c.Query("sort_by"), c.Query("sort_order")),
		),
	}

	result, err := h.listCustomersUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Customers, result.Total, pagination.Page, pagination.PageSize)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update customer", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdateCustomerCommand{
		Key:         c.Param("key"),
		DisplayName: req.DisplayName,
		Email:       req.Email,
		ExternalID:  req.ExternalID,
		Metadata:    req.Metadata,
	}

	result, err := h.updateCustomerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer updated successfully", result)
}

func (h *CustomerHandler) ArchiveCustomer(c *gin.Context) {
	err := h.archiveCustomerUC.Execute(c.Request.Context(), usecases.ArchiveCustomerCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer archived successfully", nil)
}

func (h *CustomerHandler) UnarchiveCustomer(c *gin.Context) {
	err := h.archiveCustomerUC.Execute(c.Request.Context(), usecases.ArchiveCustomerCommand{
		Key:       c.Param("key"),
		Unarchive: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer unarchived successfully", nil)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	err := h.deleteCustomerUC.Execute(c.Request.Context(), usecases.DeleteCustomerCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
