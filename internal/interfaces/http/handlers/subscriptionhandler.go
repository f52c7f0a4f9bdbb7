package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/subscription/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC    *usecases.CreateSubscriptionUseCase
	getSubscriptionUC       *usecases.GetSubscriptionUseCase
	listSubscriptionsUC     *usecases.ListSubscriptionsUseCase
	updateSubscriptionUC    *usecases.UpdateSubscriptionUseCase
	cancelSubscriptionUC    *usecases.CancelSubscriptionUseCase
	renewSubscriptionUC     *usecases.RenewSubscriptionUseCase
	archiveSubscriptionUC   *usecases.ArchiveSubscriptionUseCase
	unarchiveSubscriptionUC *usecases.UnarchiveSubscriptionUseCase
	deleteSubscriptionUC    *usecases.DeleteSubscriptionUseCase
	addOverrideUC           *usecases.AddFeatureOverrideUseCase
	removeOverrideUC        *usecases.RemoveFeatureOverrideUseCase
	clearTempOverridesUC    *usecases.ClearTemporaryOverridesUseCase
	logger                  logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	listSubscriptionsUC *usecases.ListSubscriptionsUseCase,
	updateSubscriptionUC *usecases.UpdateSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	renewSubscriptionUC *usecases.RenewSubscriptionUseCase,
	archiveSubscriptionUC *usecases.ArchiveSubscriptionUseCase,
	unarchiveSubscriptionUC *usecases.UnarchiveSubscriptionUseCase,
	deleteSubscriptionUC *usecases.DeleteSubscriptionUseCase,
	addOverrideUC *usecases.AddFeatureOverrideUseCase,
	removeOverrideUC *usecases.RemoveFeatureOverrideUseCase,
	clearTempOverridesUC *usecases.ClearTemporaryOverridesUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC:    createSubscriptionUC,
		getSubscriptionUC:       getSubscriptionUC,
		listSubscriptionsUC:     listSubscriptionsUC,
		updateSubscriptionUC:    updateSubscriptionUC,
		cancelSubscriptionUC:    cancelSubscriptionUC,
		renewSubscriptionUC:     renewSubscriptionUC,
		archiveSubscriptionUC:   archiveSubscriptionUC,
		unarchiveSubscriptionUC: unarchiveSubscriptionUC,
		deleteSubscriptionUC:    deleteSubscriptionUC,
		addOverrideUC:           addOverrideUC,
		removeOverrideUC:        removeOverrideUC,
		clearTempOverridesUC:    clearTempOverridesUC,
		logger:                  logger.NewLogger(),
	}
}

// NullableTime distinguishes an absent JSON field from an explicit null.
// Absent means leave unchanged; null means clear the date.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

type CreateSubscriptionRequest struct {
	Key                  string                 `json:"key" binding:"required,resourcekey"`
	CustomerKey          string                 `json:"customer_key" binding:"required"`
	BillingCycleKey      string                 `json:"billing_cycle_key" binding:"required"`
	ActivationDate       *time.Time             `json:"activation_date"`
	TrialEndDate         *time.Time             `json:"trial_end_date"`
	ExpirationDate       *time.Time             `json:"expiration_date"`
	CancellationDate     *time.Time             `json:"cancellation_date"`
	CurrentPeriodStart   *time.Time             `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time             `json:"current_period_end"`
	StripeSubscriptionID *string                `json:"stripe_subscription_id"`
	Metadata             map[string]interface{} `json:"metadata"`
}

type UpdateSubscriptionRequest struct {
	BillingCycleKey    *string                `json:"billing_cycle_key"`
	TrialEndDate       NullableTime           `json:"trial_end_date"`
	ExpirationDate     NullableTime           `json:"expiration_date"`
	CancellationDate   NullableTime           `json:"cancellation_date"`
	CurrentPeriodStart *time.Time             `json:"current_period_start"`
	CurrentPeriodEnd   NullableTime           `json:"current_period_end"`
	Metadata           map[string]interface{} `json:"metadata"`
}

type SetOverrideRequest struct {
	Value        string `json:"value" binding:"required"`
	OverrideType string `json:"override_type" binding:"required,oneof=permanent temporary"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		Key:                  req.Key,
		CustomerKey:          req.CustomerKey,
		BillingCycleKey:      req.BillingCycleKey,
		ActivationDate:       req.ActivationDate,
		TrialEndDate:         req.TrialEndDate,
		ExpirationDate:       req.ExpirationDate,
		CancellationDate:     req.CancellationDate,
		CurrentPeriodStart:   req.CurrentPeriodStart,
		CurrentPeriodEnd:     req.CurrentPeriodEnd,
		StripeSubscriptionID: req.StripeSubscriptionID,
		Metadata:             req.Metadata,
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	q := usecases.ListSubscriptionsQuery{
		CustomerKey:     c.Query("customer_key"),
		ProductKey:      c.Query("product_key"),
		PlanKey:         c.Query("plan_key"),
		BillingCycleKey: c.Query("billing_cycle_key"),
		Status:          c.Query("status"),
		IncludeArchived: c.Query("include_archived") == "true",
		BaseFilter: query.NewBaseFilter(
			query.WithPage(pagination.Page, pagination.PageSize),
			query.WithSort(c.Query("sort_by"), c.Query("sort_order")),
		),
	}

	result, err := h.listSubscriptionsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Subscriptions, result.Total, pagination.Page, pagination.PageSize)
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		Key:                c.Param("key"),
		BillingCycleKey:    req.BillingCycleKey,
		CurrentPeriodStart: req.CurrentPeriodStart,
		Metadata:           req.Metadata,
	}
	if req.TrialEndDate.Set {
		cmd.TrialEndDate = &req.TrialEndDate.Value
	}
	if req.ExpirationDate.Set {
		cmd.ExpirationDate = &req.ExpirationDate.Value
	}
	if req.CancellationDate.Set {
		cmd.CancellationDate = &req.CancellationDate.Value
	}
	if req.CurrentPeriodEnd.Set {
		cmd.CurrentPeriodEnd = &req.CurrentPeriodEnd.Value
	}

	result, err := h.updateSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", nil)
}

func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	err := h.renewSubscriptionUC.Execute(c.Request.Context(), usecases.RenewSubscriptionCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription renewed successfully", nil)
}

func (h *SubscriptionHandler) ArchiveSubscription(c *gin.Context) {
	err := h.archiveSubscriptionUC.Execute(c.Request.Context(), usecases.ArchiveSubscriptionCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription archived successfully", nil)
}

func (h *SubscriptionHandler) UnarchiveSubscription(c *gin.Context) {
	err := h.unarchiveSubscriptionUC.Execute(c.Request.Context(), usecases.ArchiveSubscriptionCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription unarchived successfully", nil)
}

func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	err := h.deleteSubscriptionUC.Execute(c.Request.Context(), usecases.DeleteSubscriptionCommand{
		Key: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *SubscriptionHandler) SetOverride(c *gin.Context) {
	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set override", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := usecases.AddFeatureOverrideCommand{
		SubscriptionKey: c.Param("key"),
		FeatureKey:      c.Param("featureKey"),
		Value:           req.Value,
		OverrideType:    req.OverrideType,
	}

	result, err := h.addOverrideUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feature override set successfully", result)
}

func (h *SubscriptionHandler) RemoveOverride(c *gin.Context) {
	err := h.removeOverrideUC.Execute(c.Request.Context(), usecases.RemoveFeatureOverrideCommand{
		SubscriptionKey: c.Param("key"),
		FeatureKey:      c.Param("featureKey"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *SubscriptionHandler) ClearTemporaryOverrides(c *gin.Context) {
	err := h.clearTempOverridesUC.Execute(c.Request.Context(), usecases.ClearTemporaryOverridesCommand{
		SubscriptionKey: c.Param("key"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Temporary overrides cleared successfully", nil)
}
