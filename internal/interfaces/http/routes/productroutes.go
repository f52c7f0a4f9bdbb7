// Package routes maps API paths to handlers. Each resource has a RouteConfig
// holding its handler dependencies and a Setup function registering its paths.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// ProductRouteConfig holds dependencies for product routes.
type ProductRouteConfig struct {
	ProductHandler *handlers.ProductHandler
}

// SetupProductRoutes configures product routes.
func SetupProductRoutes(api *gin.RouterGroup, cfg *ProductRouteConfig) {
	products := api.Group("/products")
	{
		products.POST("", cfg.ProductHandler.CreateProduct)
		products.GET("", cfg.ProductHandler.ListProducts)
		products.GET("/:key", cfg.ProductHandler.GetProduct)
		products.PATCH("/:key", cfg.ProductHandler.UpdateProduct)
		products.POST("/:key/archive", cfg.ProductHandler.ArchiveProduct)
		products.POST("/:key/unarchive", cfg.ProductHandler.UnarchiveProduct)
		products.DELETE("/:key", cfg.ProductHandler.DeleteProduct)

		products.GET("/:key/features", cfg.ProductHandler.ListFeatures)
		products.PUT("/:key/features/:featureKey", cfg.ProductHandler.AssociateFeature)
		products.DELETE("/:key/features/:featureKey", cfg.ProductHandler.DissociateFeature)
	}
}
