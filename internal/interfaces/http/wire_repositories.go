package http

import (
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	productRepo      catalog.ProductRepository
	featureRepo      catalog.FeatureRepository
	planRepo         catalog.PlanRepository
	planFeatureRepo  catalog.PlanFeatureRepository
	cycleRepo        catalog.BillingCycleRepository
	customerRepo     customer.Repository
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	systemConfigRepo *repository.SystemConfigRepository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		productRepo:      repository.NewProductRepository(c.db, c.log),
		featureRepo:      repository.NewFeatureRepository(c.db, c.log),
		planRepo:         repository.NewPlanRepository(c.db, c.log),
		planFeatureRepo:  repository.NewPlanFeatureRepository(c.db, c.log),
		cycleRepo:        repository.NewBillingCycleRepository(c.db, c.log),
		customerRepo:     repository.NewCustomerRepository(c.db, c.log),
		subscriptionRepo: repository.NewSubscriptionRepository(c.db, c.log),
		overrideRepo:     repository.NewFeatureOverrideRepository(c.db, c.log),
		systemConfigRepo: repository.NewSystemConfigRepository(c.db, c.log),
	}
}
