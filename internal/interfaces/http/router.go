package http

import (
	"github.com/planwise-io/planwise/internal/interfaces/http/middleware"
	"github.com/planwise-io/planwise/internal/interfaces/http/routes"
)

// SetupRoutes installs middleware and registers every route group under
// /api/v1.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)

	api := c.engine.Group("/api/v1")

	routes.SetupProductRoutes(api, &routes.ProductRouteConfig{
		ProductHandler: c.hdlrs.productHandler,
	})
	routes.SetupFeatureRoutes(api, &routes.FeatureRouteConfig{
		FeatureHandler: c.hdlrs.featureHandler,
	})
	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler:         c.hdlrs.planHandler,
		BillingCycleHandler: c.hdlrs.billingCycleHandler,
	})
	routes.SetupCustomerRoutes(api, &routes.CustomerRouteConfig{
		CustomerHandler: c.hdlrs.customerHandler,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: c.hdlrs.subscriptionHandler,
	})
	routes.SetupEntitlementRoutes(api, &routes.EntitlementRouteConfig{
		EntitlementHandler: c.hdlrs.entitlementHandler,
	})
	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AdminHandler: c.hdlrs.adminHandler,
	})
}
