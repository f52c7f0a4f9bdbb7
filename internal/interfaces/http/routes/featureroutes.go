package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// FeatureRouteConfig holds dependencies for feature routes.
type FeatureRouteConfig struct {
	FeatureHandler *handlers.FeatureHandler
}

// SetupFeatureRoutes configures feature routes.
func SetupFeatureRoutes(api *gin.RouterGroup, cfg *FeatureRouteConfig) {
	features := api.Group("/features")
	{
		features.POST("", cfg.FeatureHandler.CreateFeature)
		features.GET("", cfg.FeatureHandler.ListFeatures)
		features.GET("/:key", cfg.FeatureHandler.GetFeature)
		features.PATCH("/:key", cfg.FeatureHandler.UpdateFeature)
		features.POST("/:key/archive", cfg.FeatureHandler.ArchiveFeature)
		features.POST("/:key/unarchive", cfg.FeatureHandler.UnarchiveFeature)
		features.DELETE("/:key", cfg.FeatureHandler.DeleteFeature)
	}
}
