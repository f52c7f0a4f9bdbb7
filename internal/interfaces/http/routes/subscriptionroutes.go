package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

// SetupSubscriptionRoutes configures subscription lifecycle and override routes.
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subscriptions.GET("/:key", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.PATCH("/:key", cfg.SubscriptionHandler.UpdateSubscription)
		subscriptions.POST("/:key/cancel", cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.POST("/:key/renew", cfg.SubscriptionHandler.RenewSubscription)
		subscriptions.POST("/:key/archive", cfg.SubscriptionHandler.ArchiveSubscription)
		subscriptions.POST("/:key/unarchive", cfg.SubscriptionHandler.UnarchiveSubscription)
		subscriptions.DELETE("/:key", cfg.SubscriptionHandler.DeleteSubscription)

		subscriptions.PUT("/:key/overrides/:featureKey", cfg.SubscriptionHandler.SetOverride)
		subscriptions.DELETE("/:key/overrides/:featureKey", cfg.SubscriptionHandler.RemoveOverride)
		subscriptions.DELETE("/:key/overrides/temporary", cfg.SubscriptionHandler.ClearTemporaryOverrides)
	}
}
