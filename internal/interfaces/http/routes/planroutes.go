package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// PlanRouteConfig holds dependencies for plan and billing cycle routes.
type PlanRouteConfig struct {
	PlanHandler         *handlers.PlanHandler
	BillingCycleHandler *handlers.BillingCycleHandler
}

// SetupPlanRoutes configures plan routes, including the nested plan feature
// and billing cycle collections.
func SetupPlanRoutes(api *gin.RouterGroup, cfg *PlanRouteConfig) {
	plans := api.Group("/plans")
	{
		plans.POST("", cfg.PlanHandler.CreatePlan)
		plans.GET("", cfg.PlanHandler.ListPlans)
		plans.GET("/:key", cfg.PlanHandler.GetPlan)
		plans.PATCH("/:key", cfg.PlanHandler.UpdatePlan)
		plans.POST("/:key/archive", cfg.PlanHandler.ArchivePlan)
		plans.POST("/:key/unarchive", cfg.PlanHandler.UnarchivePlan)
		plans.DELETE("/:key", cfg.PlanHandler.DeletePlan)

		plans.PUT("/:key/transition-cycle", cfg.PlanHandler.SetTransitionCycle)

		plans.GET("/:key/features", cfg.PlanHandler.ListFeatures)
		plans.PUT("/:key/features/:featureKey", cfg.PlanHandler.SetFeature)
		plans.DELETE("/:key/features/:featureKey", cfg.PlanHandler.RemoveFeature)

		plans.POST("/:key/billing-cycles", cfg.BillingCycleHandler.CreateBillingCycle)
		plans.GET("/:key/billing-cycles", cfg.BillingCycleHandler.ListBillingCycles)
	}

	cycles := api.Group("/billing-cycles")
	{
		cycles.GET("/:key", cfg.BillingCycleHandler.GetBillingCycle)
		cycles.PATCH("/:key", cfg.BillingCycleHandler.UpdateBillingCycle)
		cycles.POST("/:key/archive", cfg.BillingCycleHandler.ArchiveBillingCycle)
		cycles.POST("/:key/unarchive", cfg.BillingCycleHandler.UnarchiveBillingCycle)
		cycles.DELETE("/:key", cfg.BillingCycleHandler.DeleteBillingCycle)
	}
}
