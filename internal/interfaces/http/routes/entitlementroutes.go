package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// EntitlementRouteConfig holds dependencies for entitlement resolution routes.
type EntitlementRouteConfig struct {
	EntitlementHandler *handlers.EntitlementHandler
}

// SetupEntitlementRoutes configures the read-side resolution routes.
func SetupEntitlementRoutes(api *gin.RouterGroup, cfg *EntitlementRouteConfig) {
	entitlements := api.Group("/entitlements/:customerKey/:productKey")
	{
		entitlements.GET("/features", cfg.EntitlementHandler.GetAllFeatures)
		entitlements.GET("/features/:featureKey/value", cfg.EntitlementHandler.GetValue)
		entitlements.GET("/features/:featureKey/enabled", cfg.EntitlementHandler.IsEnabled)
	}
}
