package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/entitlement/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

// EntitlementHandler serves the read-side resolution endpoints. These are the
// hot path; everything else in the API exists to feed them.
type EntitlementHandler struct {
	getValueUC       *usecases.GetValueForCustomerUseCase
	isEnabledUC      *usecases.IsEnabledForCustomerUseCase
	getAllFeaturesUC *usecases.GetAllFeaturesForCustomerUseCase
	logger           logger.Interface
}

func NewEntitlementHandler(
	getValueUC *usecases.GetValueForCustomerUseCase,
	isEnabledUC *usecases.IsEnabledForCustomerUseCase,
	getAllFeaturesUC *usecases.GetAllFeaturesForCustomerUseCase,
) *EntitlementHandler {
	return &EntitlementHandler{
		getValueUC:       getValueUC,
		isEnabledUC:      isEnabledUC,
		getAllFeaturesUC: getAllFeaturesUC,
		logger:           logger.NewLogger(),
	}
}

type FeatureValueResponse struct {
	CustomerKey string  `json:"customer_key"`
	ProductKey  string  `json:"product_key"`
	FeatureKey  string  `json:"feature_key"`
	Value       *string `json:"value"`
}

type FeatureEnabledResponse struct {
	CustomerKey string `json:"customer_key"`
	ProductKey  string `json:"product_key"`
	FeatureKey  string `json:"feature_key"`
	Enabled     bool   `json:"enabled"`
}

type AllFeaturesResponse struct {
	CustomerKey string            `json:"customer_key"`
	ProductKey  string            `json:"product_key"`
	Features    map[string]string `json:"features"`
}

func (h *EntitlementHandler) GetValue(c *gin.Context) {
	q := usecases.GetValueForCustomerQuery{
		CustomerKey: c.Param("customerKey"),
		ProductKey:  c.Param("productKey"),
		FeatureKey:  c.Param("featureKey"),
	}
	if def, ok := c.GetQuery("default"); ok {
		q.Default = &def
	}

	value, err := h.getValueUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", FeatureValueResponse{
		CustomerKey: q.CustomerKey,
		ProductKey:  q.ProductKey,
		FeatureKey:  q.FeatureKey,
		Value:       value,
	})
}

func (h *EntitlementHandler) IsEnabled(c *gin.Context) {
	q := usecases.IsEnabledForCustomerQuery{
		CustomerKey: c.Param("customerKey"),
		ProductKey:  c.Param("productKey"),
		FeatureKey:  c.Param("featureKey"),
	}

	enabled, err := h.isEnabledUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", FeatureEnabledResponse{
		CustomerKey: q.CustomerKey,
		ProductKey:  q.ProductKey,
		FeatureKey:  q.FeatureKey,
		Enabled:     enabled,
	})
}

func (h *EntitlementHandler) GetAllFeatures(c *gin.Context) {
	q := usecases.GetAllFeaturesForCustomerQuery{
		CustomerKey: c.Param("customerKey"),
		ProductKey:  c.Param("productKey"),
	}

	features, err := h.getAllFeaturesUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AllFeaturesResponse{
		CustomerKey: q.CustomerKey,
		ProductKey:  q.ProductKey,
		Features:    features,
	})
}
