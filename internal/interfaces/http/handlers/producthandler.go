// Package handlers contains the gin HTTP handlers for the public API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/catalog/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type ProductHandler struct {
	createProductUC       *usecases.CreateProductUseCase
	getProductUC          *usecases.GetProductUseCase
	listProductsUC        *usecases.ListProductsUseCase
	updateProductUC       *usecases.UpdateProductUseCase
	archiveProductUC      *usecases.ArchiveProductUseCase
	deleteProductUC       *usecases.DeleteProductUseCase
	associateFeatureUC    *usecases.AssociateFeatureUseCase
	listProductFeaturesUC *usecases.ListProductFeaturesUseCase
	logger                logger.Interface
}

func NewProductHandler(
	createProductUC *usecases.CreateProductUseCase,
	getProductUC *usecases.GetProductUseCase,
	listProductsUC *usecases.ListProductsUseCase,
	updateProductUC *usecases.UpdateProductUseCase,
	archiveProductUC *usecases.ArchiveProductUseCase,
	deleteProductUC *usecases.DeleteProductUseCase,
	associateFeatureUC *usecases.AssociateFeatureUseCase,
	listProductFeaturesUC *usecases.ListProductFeaturesUseCase,
) *ProductHandler {
	return &ProductHandler{
		createProductUC:       createProductUC,
		getProductUC:          getProductUC,
		listProductsUC:        listProductsUC,
		updateProductUC:       updateProductUC,
		archiveProductUC:      archiveProductUC,
		deleteProductUC:       deleteProductUC,
		associateFeatureUC:    associateFeatureUC,
		listProductFeaturesUC: listProductFeaturesUC,
		logger:                logger.NewLogger(),
	}
}

type CreateProductRequest struct {
	Key         string                 `json:"key" binding:"required,resourcekey"`
	DisplayName string                 `json:"display_name" binding:"required"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateProductRequest struct {
	DisplayName *string                `json:"display_name"`
	Description *string                `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create product", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreateProductCommand{
		Key:         req.Key,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	result, err := h.createProductUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Product created successfully")
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	result, err := h.getProductUC.Execute(c.Request.Context(), usecases.GetProductQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	q := usecases.ListProductsQuery{
		Status: c.Query("status"),
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pagination.Page, pagination.PageSize),
			query.WithSort(c.Query("sort_by"), c.Query("sort_order")),
		),
	}

	result, err := h.listProductsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Products, result.Total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update product", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdateProductCommand{
		Key:         c.Param("key"),
		DisplayName: req.DisplayName,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	result, err := h.updateProductUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", result)
}

func (h *ProductHandler) ArchiveProduct(c *gin.Context) {
	err := h.archiveProductUC.Execute(c.Request.Context(), usecases.ArchiveProductCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product archived successfully", nil)
}

func (h *ProductHandler) UnarchiveProduct(c *gin.Context) {
	err := h.archiveProductUC.Execute(c.Request.Context(), usecases.ArchiveProductCommand{
		Key:       c.Param("key"),
		Unarchive: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product unarchived successfully", nil)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.deleteProductUC.Execute(c.Request.Context(), usecases.DeleteProductCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *ProductHandler) AssociateFeature(c *gin.Context) {
	err := h.associateFeatureUC.Execute(c.Request.Context(), usecases.AssociateFeatureCommand{
		ProductKey: c.Param("key"),
		FeatureKey: c.Param("featureKey"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature associated successfully", nil)
}

func (h *ProductHandler) DissociateFeature(c *gin.Context) {
	err := h.associateFeatureUC.Execute(c.Request.Context(), usecases.AssociateFeatureCommand{
		ProductKey: c.Param("key"),
		FeatureKey: c.Param("featureKey"),
		Dissociate: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature dissociated successfully", nil)
}

func (h *ProductHandler) ListFeatures(c *gin.Context) {
	result, err := h.listProductFeaturesUC.Execute(c.Request.Context(), usecases.ListProductFeaturesQuery{
		ProductKey: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
