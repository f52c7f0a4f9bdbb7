package http

import (
	catalogUsecases "github.com/planwise-io/planwise/internal/application/catalog/usecases"
	customerUsecases "github.com/planwise-io/planwise/internal/application/customer/usecases"
	entitlementUsecases "github.com/planwise-io/planwise/internal/application/entitlement/usecases"
	subscriptionUsecases "github.com/planwise-io/planwise/internal/application/subscription/usecases"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/db"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Product
	createProductUC       *catalogUsecases.CreateProductUseCase
	getProductUC          *catalogUsecases.GetProductUseCase
	listProductsUC        *catalogUsecases.ListProductsUseCase
	updateProductUC       *catalogUsecases.UpdateProductUseCase
	archiveProductUC      *catalogUsecases.ArchiveProductUseCase
	deleteProductUC       *catalogUsecases.DeleteProductUseCase
	associateFeatureUC    *catalogUsecases.AssociateFeatureUseCase
	listProductFeaturesUC *catalogUsecases.ListProductFeaturesUseCase

	// Feature
	createFeatureUC  *catalogUsecases.CreateFeatureUseCase
	getFeatureUC     *catalogUsecases.GetFeatureUseCase
	listFeaturesUC   *catalogUsecases.ListFeaturesUseCase
	updateFeatureUC  *catalogUsecases.UpdateFeatureUseCase
	archiveFeatureUC *catalogUsecases.ArchiveFeatureUseCase
	deleteFeatureUC  *catalogUsecases.DeleteFeatureUseCase

	// Plan
	createPlanUC         *catalogUsecases.CreatePlanUseCase
	getPlanUC            *catalogUsecases.GetPlanUseCase
	listPlansUC          *catalogUsecases.ListPlansUseCase
	updatePlanUC         *catalogUsecases.UpdatePlanUseCase
	archivePlanUC        *catalogUsecases.ArchivePlanUseCase
	deletePlanUC         *catalogUsecases.DeletePlanUseCase
	setTransitionCycleUC *catalogUsecases.SetTransitionCycleUseCase
	setPlanFeatureUC     *catalogUsecases.SetPlanFeatureUseCase
	removePlanFeatureUC  *catalogUsecases.RemovePlanFeatureUseCase
	listPlanFeaturesUC   *catalogUsecases.ListPlanFeaturesUseCase

	// Billing cycle
	createCycleUC  *catalogUsecases.CreateBillingCycleUseCase
	getCycleUC     *catalogUsecases.GetBillingCycleUseCase
	listCyclesUC   *catalogUsecases.ListBillingCyclesUseCase
	updateCycleUC  *catalogUsecases.UpdateBillingCycleUseCase
	archiveCycleUC *catalogUsecases.ArchiveBillingCycleUseCase
	deleteCycleUC  *catalogUsecases.DeleteBillingCycleUseCase

	// Customer
	createCustomerUC  *customerUsecases.CreateCustomerUseCase
	getCustomerUC     *customerUsecases.GetCustomerUseCase
	listCustomersUC   *customerUsecases.ListCustomersUseCase
	updateCustomerUC  *customerUsecases.UpdateCustomerUseCase
	archiveCustomerUC *customerUsecases.ArchiveCustomerUseCase
	deleteCustomerUC  *customerUsecases.DeleteCustomerUseCase

	// Subscription
	createSubscriptionUC    *subscriptionUsecases.CreateSubscriptionUseCase
	getSubscriptionUC       *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptionsUC     *subscriptionUsecases.ListSubscriptionsUseCase
	updateSubscriptionUC    *subscriptionUsecases.UpdateSubscriptionUseCase
	cancelSubscriptionUC    *subscriptionUsecases.CancelSubscriptionUseCase
	renewSubscriptionUC     *subscriptionUsecases.RenewSubscriptionUseCase
	archiveSubscriptionUC   *subscriptionUsecases.ArchiveSubscriptionUseCase
	unarchiveSubscriptionUC *subscriptionUsecases.UnarchiveSubscriptionUseCase
	deleteSubscriptionUC    *subscriptionUsecases.DeleteSubscriptionUseCase
	addOverrideUC           *subscriptionUsecases.AddFeatureOverrideUseCase
	removeOverrideUC        *subscriptionUsecases.RemoveFeatureOverrideUseCase
	clearTempOverridesUC    *subscriptionUsecases.ClearTemporaryOverridesUseCase
	transitionExpiredUC     *subscriptionUsecases.TransitionExpiredUseCase

	// Entitlement
	getValueUC       *entitlementUsecases.GetValueForCustomerUseCase
	isEnabledUC      *entitlementUsecases.IsEnabledForCustomerUseCase
	getAllFeaturesUC *entitlementUsecases.GetAllFeaturesForCustomerUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	clk := clock.NewReal()
	txManager := db.NewTransactionManager(c.db)

	ucs := &allUseCases{
		createProductUC:       catalogUsecases.NewCreateProductUseCase(r.productRepo, c.log),
		getProductUC:          catalogUsecases.NewGetProductUseCase(r.productRepo, c.log),
		listProductsUC:        catalogUsecases.NewListProductsUseCase(r.productRepo, c.log),
		updateProductUC:       catalogUsecases.NewUpdateProductUseCase(r.productRepo, c.log),
		archiveProductUC:      catalogUsecases.NewArchiveProductUseCase(r.productRepo, c.log),
		deleteProductUC:       catalogUsecases.NewDeleteProductUseCase(r.productRepo, r.planRepo, r.subscriptionRepo, c.log),
		associateFeatureUC:    catalogUsecases.NewAssociateFeatureUseCase(r.productRepo, r.featureRepo, c.log),
		listProductFeaturesUC: catalogUsecases.NewListProductFeaturesUseCase(r.productRepo, c.log),

		createFeatureUC:  catalogUsecases.NewCreateFeatureUseCase(r.featureRepo, c.log),
		getFeatureUC:     catalogUsecases.NewGetFeatureUseCase(r.featureRepo, c.log),
		listFeaturesUC:   catalogUsecases.NewListFeaturesUseCase(r.featureRepo, c.log),
		updateFeatureUC:  catalogUsecases.NewUpdateFeatureUseCase(r.featureRepo, c.log),
		archiveFeatureUC: catalogUsecases.NewArchiveFeatureUseCase(r.featureRepo, c.log),
		deleteFeatureUC:  catalogUsecases.NewDeleteFeatureUseCase(r.featureRepo, c.log),

		createPlanUC:         catalogUsecases.NewCreatePlanUseCase(r.planRepo, r.productRepo, c.log),
		getPlanUC:            catalogUsecases.NewGetPlanUseCase(r.planRepo, r.productRepo, r.cycleRepo, c.log),
		listPlansUC:          catalogUsecases.NewListPlansUseCase(r.planRepo, r.productRepo, r.cycleRepo, c.log),
		updatePlanUC:         catalogUsecases.NewUpdatePlanUseCase(r.planRepo, c.log),
		archivePlanUC:        catalogUsecases.NewArchivePlanUseCase(r.planRepo, c.log),
		deletePlanUC:         catalogUsecases.NewDeletePlanUseCase(r.planRepo, r.planFeatureRepo, r.subscriptionRepo, c.log),
		setTransitionCycleUC: catalogUsecases.NewSetTransitionCycleUseCase(r.planRepo, r.cycleRepo, c.log),
		setPlanFeatureUC:     catalogUsecases.NewSetPlanFeatureUseCase(r.planRepo, r.featureRepo, r.planFeatureRepo, c.log),
		removePlanFeatureUC:  catalogUsecases.NewRemovePlanFeatureUseCase(r.planRepo, r.featureRepo, r.planFeatureRepo, c.log),
		listPlanFeaturesUC:   catalogUsecases.NewListPlanFeaturesUseCase(r.planRepo, r.featureRepo, r.planFeatureRepo, c.log),

		createCycleUC:  catalogUsecases.NewCreateBillingCycleUseCase(r.cycleRepo, r.planRepo, c.log),
		getCycleUC:     catalogUsecases.NewGetBillingCycleUseCase(r.cycleRepo, r.planRepo, c.log),
		listCyclesUC:   catalogUsecases.NewListBillingCyclesUseCase(r.cycleRepo, r.planRepo, c.log),
		updateCycleUC:  catalogUsecases.NewUpdateBillingCycleUseCase(r.cycleRepo, c.log),
		archiveCycleUC: catalogUsecases.NewArchiveBillingCycleUseCase(r.cycleRepo, c.log),
		deleteCycleUC:  catalogUsecases.NewDeleteBillingCycleUseCase(r.cycleRepo, r.subscriptionRepo, c.log),

		createCustomerUC:  customerUsecases.NewCreateCustomerUseCase(r.customerRepo, c.log),
		getCustomerUC:     customerUsecases.NewGetCustomerUseCase(r.customerRepo, c.log),
		listCustomersUC:   customerUsecases.NewListCustomersUseCase(r.customerRepo, c.log),
		updateCustomerUC:  customerUsecases.NewUpdateCustomerUseCase(r.customerRepo, c.log),
		archiveCustomerUC: customerUsecases.NewArchiveCustomerUseCase(r.customerRepo, c.log),
		deleteCustomerUC:  customerUsecases.NewDeleteCustomerUseCase(r.customerRepo, c.log),

		createSubscriptionUC:    subscriptionUsecases.NewCreateSubscriptionUseCase(r.subscriptionRepo, r.customerRepo, r.planRepo, r.productRepo, r.cycleRepo, clk, c.log),
		getSubscriptionUC:       subscriptionUsecases.NewGetSubscriptionUseCase(r.subscriptionRepo, r.customerRepo, r.planRepo, r.productRepo, r.cycleRepo, clk, c.log),
		listSubscriptionsUC:     subscriptionUsecases.NewListSubscriptionsUseCase(r.subscriptionRepo, r.customerRepo, r.planRepo, r.productRepo, r.cycleRepo, clk, c.log),
		updateSubscriptionUC:    subscriptionUsecases.NewUpdateSubscriptionUseCase(r.subscriptionRepo, r.customerRepo, r.planRepo, r.productRepo, r.cycleRepo, clk, c.log),
		cancelSubscriptionUC:    subscriptionUsecases.NewCancelSubscriptionUseCase(r.subscriptionRepo, clk, c.log),
		renewSubscriptionUC:     subscriptionUsecases.NewRenewSubscriptionUseCase(r.subscriptionRepo, r.overrideRepo, r.cycleRepo, clk, c.log),
		archiveSubscriptionUC:   subscriptionUsecases.NewArchiveSubscriptionUseCase(r.subscriptionRepo, r.overrideRepo, c.log),
		unarchiveSubscriptionUC: subscriptionUsecases.NewUnarchiveSubscriptionUseCase(r.subscriptionRepo, c.log),
		deleteSubscriptionUC:    subscriptionUsecases.NewDeleteSubscriptionUseCase(r.subscriptionRepo, r.overrideRepo, c.log),
		addOverrideUC:           subscriptionUsecases.NewAddFeatureOverrideUseCase(r.subscriptionRepo, r.overrideRepo, r.featureRepo, c.log),
		removeOverrideUC:        subscriptionUsecases.NewRemoveFeatureOverrideUseCase(r.subscriptionRepo, r.overrideRepo, r.featureRepo, c.log),
		clearTempOverridesUC:    subscriptionUsecases.NewClearTemporaryOverridesUseCase(r.subscriptionRepo, r.overrideRepo, c.log),
		transitionExpiredUC:     subscriptionUsecases.NewTransitionExpiredUseCase(r.subscriptionRepo, r.planRepo, r.cycleRepo, txManager, clk, c.log),

		getAllFeaturesUC: entitlementUsecases.NewGetAllFeaturesForCustomerUseCase(r.customerRepo, r.productRepo, r.planRepo, r.planFeatureRepo, r.subscriptionRepo, r.overrideRepo, clk, c.log),
	}

	ucs.getValueUC = entitlementUsecases.NewGetValueForCustomerUseCase(
		r.customerRepo, r.productRepo, r.featureRepo, r.planRepo,
		r.planFeatureRepo, r.subscriptionRepo, r.overrideRepo, clk, c.log,
	)
	if c.entitlementCache != nil {
		ucs.getValueUC.SetCache(c.entitlementCache)
		ucs.updateSubscriptionUC.SetInvalidation(c.entitlementCache)
		ucs.addOverrideUC.SetInvalidation(r.customerRepo, c.entitlementCache)
		ucs.removeOverrideUC.SetInvalidation(r.customerRepo, c.entitlementCache)
		ucs.clearTempOverridesUC.SetInvalidation(r.customerRepo, c.entitlementCache)
	}
	ucs.isEnabledUC = entitlementUsecases.NewIsEnabledForCustomerUseCase(ucs.getValueUC, c.log)

	c.ucs = ucs
}
