package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/subscription/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	Key string
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	customerRepo     customer.Repository
	planRepo         catalog.PlanRepository
	productRepo      catalog.ProductRepository
	cycleRepo        catalog.BillingCycleRepository
	clock            clock.Clock
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	customerRepo customer.Repository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	clock clock.Clock,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		productRepo:      productRepo,
		cycleRepo:        cycleRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	if query.Key == "" {
		return nil, errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, query.Key)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", query.Key)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found", query.Key)
	}

	refs, err := resolveRefs(ctx, sub, uc.customerRepo, uc.planRepo, uc.productRepo, uc.cycleRepo)
	if err != nil {
		uc.logger.Errorw("failed to resolve subscription references", "error", err, "key", query.Key)
		return nil, err
	}

	return dto.ToSubscriptionDTO(sub, refs, uc.clock.Now()), nil
}
