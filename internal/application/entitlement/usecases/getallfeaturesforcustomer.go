package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type GetAllFeaturesForCustomerQuery struct {
	CustomerKey string
	ProductKey  string
}

// GetAllFeaturesForCustomerUseCase resolves every feature associated with a
// product for one customer in a single pass, sharing the batched working set
// across features.
type GetAllFeaturesForCustomerUseCase struct {
	customerRepo     customer.Repository
	productRepo      catalog.ProductRepository
	planRepo         catalog.PlanRepository
	planFeatureRepo  catalog.PlanFeatureRepository
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	clock            clock.Clock
	logger           logger.Interface
}

func NewGetAllFeaturesForCustomerUseCase(
	customerRepo customer.Repository,
	productRepo catalog.ProductRepository,
	planRepo catalog.PlanRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	clock clock.Clock,
	logger logger.Interface,
) *GetAllFeaturesForCustomerUseCase {
	return &GetAllFeaturesForCustomerUseCase{
		customerRepo:     customerRepo,
		productRepo:      productRepo,
		planRepo:         planRepo,
		planFeatureRepo:  planFeatureRepo,
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetAllFeaturesForCustomerUseCase) Execute(ctx context.Context, query GetAllFeaturesForCustomerQuery) (map[string]string, error) {
	if query.CustomerKey == "" || query.ProductKey == "" {
		return nil, errors.NewValidationError("customer key and product key are required")
	}

	product, err := uc.productRepo.GetByKey(ctx, query.ProductKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", query.ProductKey)
	}

	features, err := uc.productRepo.GetAssociatedFeatures(ctx, product.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to get product features: %w", err)
	}

	result := make(map[string]string, len(features))

	cust, err := uc.customerRepo.GetByKey(ctx, query.CustomerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		// Unknown customer: everything resolves to defaults.
		for _, feature := range features {
			result[feature.Key()] = feature.DefaultValue()
		}
		return result, nil
	}

	rc, err := loadResolutionContext(ctx, cust.ID(), product.ID(), uc.clock.Now(),
		uc.subscriptionRepo, uc.planRepo, uc.planFeatureRepo, uc.overrideRepo)
	if err != nil {
		return nil, err
	}

	for _, feature := range features {
		if rc.empty() {
			result[feature.Key()] = feature.DefaultValue()
			continue
		}
		if resolution, ok := rc.resolve(feature); ok {
			result[feature.Key()] = resolution.Value
		} else {
			result[feature.Key()] = feature.DefaultValue()
		}
	}

	uc.logger.Debugw("resolved all features for customer",
		"customer_key", query.CustomerKey,
		"product_key", query.ProductKey,
		"feature_count", len(result),
	)
	return result, nil
}
