package http

import (
	"github.com/planwise-io/planwise/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	productHandler      *handlers.ProductHandler
	featureHandler      *handlers.FeatureHandler
	planHandler         *handlers.PlanHandler
	billingCycleHandler *handlers.BillingCycleHandler
	customerHandler     *handlers.CustomerHandler
	subscriptionHandler *handlers.SubscriptionHandler
	entitlementHandler  *handlers.EntitlementHandler
	adminHandler        *handlers.AdminHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs

	c.hdlrs = &allHandlers{
		productHandler: handlers.NewProductHandler(
			u.createProductUC, u.getProductUC, u.listProductsUC, u.updateProductUC,
			u.archiveProductUC, u.deleteProductUC, u.associateFeatureUC, u.listProductFeaturesUC,
		),
		featureHandler: handlers.NewFeatureHandler(
			u.createFeatureUC, u.getFeatureUC, u.listFeaturesUC,
			u.updateFeatureUC, u.archiveFeatureUC, u.deleteFeatureUC,
		),
		planHandler: handlers.NewPlanHandler(
			u.createPlanUC, u.getPlanUC, u.listPlansUC, u.updatePlanUC,
			u.archivePlanUC, u.deletePlanUC, u.setTransitionCycleUC,
			u.setPlanFeatureUC, u.removePlanFeatureUC, u.listPlanFeaturesUC,
		),
		billingCycleHandler: handlers.NewBillingCycleHandler(
			u.createCycleUC, u.getCycleUC, u.listCyclesUC,
			u.updateCycleUC, u.archiveCycleUC, u.deleteCycleUC,
		),
		customerHandler: handlers.NewCustomerHandler(
			u.createCustomerUC, u.getCustomerUC, u.listCustomersUC,
			u.updateCustomerUC, u.archiveCustomerUC, u.deleteCustomerUC,
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			u.createSubscriptionUC, u.getSubscriptionUC, u.listSubscriptionsUC,
			u.updateSubscriptionUC, u.cancelSubscriptionUC, u.renewSubscriptionUC,
			u.archiveSubscriptionUC, u.unarchiveSubscriptionUC, u.deleteSubscriptionUC,
			u.addOverrideUC, u.removeOverrideUC, u.clearTempOverridesUC,
		),
		entitlementHandler: handlers.NewEntitlementHandler(
			u.getValueUC, u.isEnabledUC, u.getAllFeaturesUC,
		),
		adminHandler:  handlers.NewAdminHandler(u.transitionExpiredUC),
		healthHandler: handlers.NewHealthHandler(c.db),
	}
}
