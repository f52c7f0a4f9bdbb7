package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	AdminHandler *handlers.AdminHandler
}

// SetupAdminRoutes configures the operational admin routes.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	{
		admin.POST("/transitions/run", cfg.AdminHandler.RunTransitions)
	}
}
