package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// CustomerRouteConfig holds dependencies for customer routes.
type CustomerRouteConfig struct {
	CustomerHandler *handlers.CustomerHandler
}

// SetupCustomerRoutes configures customer routes.
func SetupCustomerRoutes(api *gin.RouterGroup, cfg *CustomerRouteConfig) {
	customers := api.Group("/customers")
	{
		customers.POST("", cfg.CustomerHandler.CreateCustomer)
		customers.GET("", cfg.CustomerHandler.ListCustomers)
		customers.GET("/:key", cfg.CustomerHandler.GetCustomer)
		customers.PATCH("/:key", cfg.CustomerHandler.UpdateCustomer)
		customers.POST("/:key/archive", cfg.CustomerHandler.ArchiveCustomer)
		customers.POST("/:key/unarchive", cfg.CustomerHandler.UnarchiveCustomer)
		customers.DELETE("/:key", cfg.CustomerHandler.DeleteCustomer)
	}
}
