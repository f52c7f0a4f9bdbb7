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

type GetValueForCustomerQuery struct {
	CustomerKey string
	ProductKey  string
	FeatureKey  string
	// Default is returned when resolution yields nothing, or when the
	// customer or feature cannot be found.
	Default *string
}

// ValueCache caches resolved entitlement values. Implementations are
// short-TTL; a nil cache disables caching entirely.
type ValueCache interface {
	Get(ctx context.Context, customerKey, productKey, featureKey string) (string, bool, error)
	Set(ctx context.Context, customerKey, productKey, featureKey, value string) error
}

// GetValueForCustomerUseCase answers "what is the effective value of this
// feature for this customer on this product", across all of the customer's
// active and trial subscriptions. Missing customers or features degrade to
// the caller's default instead of erroring; read paths never fail on absent
// optional references.
type GetValueForCustomerUseCase struct {
	customerRepo     customer.Repository
	productRepo      catalog.ProductRepository
	featureRepo      catalog.FeatureRepository
	planRepo         catalog.PlanRepository
	planFeatureRepo  catalog.PlanFeatureRepository
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	cache            ValueCache
	clock            clock.Clock
	logger           logger.Interface
}

func NewGetValueForCustomerUseCase(
	customerRepo customer.Repository,
	productRepo catalog.ProductRepository,
	featureRepo catalog.FeatureRepository,
	planRepo catalog.PlanRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	clock clock.Clock,
	logger logger.Interface,
) *GetValueForCustomerUseCase {
	return &GetValueForCustomerUseCase{
		customerRepo:     customerRepo,
		productRepo:      productRepo,
		featureRepo:      featureRepo,
		planRepo:         planRepo,
		planFeatureRepo:  planFeatureRepo,
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		clock:            clock,
		logger:           logger,
	}
}

// SetCache enables short-TTL value caching (optional).
func (uc *GetValueForCustomerUseCase) SetCache(cache ValueCache) {
	uc.cache = cache
}

func (uc *GetValueForCustomerUseCase) Execute(ctx context.Context, query GetValueForCustomerQuery) (*string, error) {
	if query.CustomerKey == "" || query.ProductKey == "" || query.FeatureKey == "" {
		return nil, errors.NewValidationError("customer key, product key and feature key are required")
	}

	if uc.cache != nil {
		if cached, ok, err := uc.cache.Get(ctx, query.CustomerKey, query.ProductKey, query.FeatureKey); err != nil {
			uc.logger.Warnw("entitlement cache read failed", "error", err)
		} else if ok {
			// An empty cached value means resolution yielded nothing; the
			// caller default applies to it the same as on a cold read.
			if cached == "" && query.Default != nil {
				return query.Default, nil
			}
			return &cached, nil
		}
	}

	cust, err := uc.customerRepo.GetByKey(ctx, query.CustomerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		return query.Default, nil
	}

	feature, err := uc.featureRepo.GetByKey(ctx, query.FeatureKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return query.Default, nil
	}

	product, err := uc.productRepo.GetByKey(ctx, query.ProductKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, nil
	}

	rc, err := loadResolutionContext(ctx, cust.ID(), product.ID(), uc.clock.Now(),
		uc.subscriptionRepo, uc.planRepo, uc.planFeatureRepo, uc.overrideRepo)
	if err != nil {
		return nil, err
	}

	var value string
	if rc.empty() {
		// No active subscription on this product: the feature default applies.
		value = feature.DefaultValue()
	} else if resolution, ok := rc.resolve(feature); ok {
		value = resolution.Value
	} else {
		value = feature.DefaultValue()
	}

	if value == "" && query.Default != nil {
		return query.Default, nil
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, query.CustomerKey, query.ProductKey, query.FeatureKey, value); err != nil {
			uc.logger.Warnw("entitlement cache write failed", "error", err)
		}
	}

	return &value, nil
}
