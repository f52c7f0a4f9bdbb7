package usecases

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/planwise-io/planwise/internal/application/subscription/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
)

// ListSubscriptionsQuery filters by keys. Keys that do not resolve produce an
// empty result, not an error; list endpoints stay idempotent under
// eventually-consistent upstream systems.
type ListSubscriptionsQuery struct {
	CustomerKey     string
	ProductKey      string
	PlanKey         string
	BillingCycleKey string
	Status          string
	IncludeArchived bool
	query.BaseFilter
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionDTO `json:"subscriptions"`
	Total         int64                  `json:"total"`
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	customerRepo     customer.Repository
	planRepo         catalog.PlanRepository
	productRepo      catalog.ProductRepository
	cycleRepo        catalog.BillingCycleRepository
	clock            clock.Clock
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	customerRepo customer.Repository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	clock clock.Clock,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		productRepo:      productRepo,
		cycleRepo:        cycleRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, q ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	now := uc.clock.Now()
	filter := subscription.Filter{
		Now:             now,
		IncludeArchived: q.IncludeArchived,
		BaseFilter:      q.BaseFilter,
	}

	if q.Status != "" {
		status := vo.SubscriptionStatus(q.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	empty := &ListSubscriptionsResult{Subscriptions: []*dto.SubscriptionDTO{}}

	if q.CustomerKey != "" {
		cust, err := uc.customerRepo.GetByKey(ctx, q.CustomerKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve customer key: %w", err)
		}
		if cust == nil {
			return empty, nil
		}
		id := cust.ID()
		filter.CustomerID = &id
	}
	if q.ProductKey != "" {
		product, err := uc.productRepo.GetByKey(ctx, q.ProductKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product key: %w", err)
		}
		if product == nil {
			return empty, nil
		}
		id := product.ID()
		filter.ProductID = &id
	}
	if q.PlanKey != "" {
		plan, err := uc.planRepo.GetByKey(ctx, q.PlanKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve plan key: %w", err)
		}
		if plan == nil {
			return empty, nil
		}
		id := plan.ID()
		filter.PlanID = &id
	}
	if q.BillingCycleKey != "" {
		cycle, err := uc.cycleRepo.GetByKey(ctx, q.BillingCycleKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve billing cycle key: %w", err)
		}
		if cycle == nil {
			return empty, nil
		}
		id := cycle.ID()
		filter.BillingCycleID = &id
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	dtos := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		refs, err := resolveRefs(ctx, sub, uc.customerRepo, uc.planRepo, uc.productRepo, uc.cycleRepo)
		if err != nil {
			uc.logger.Warnw("skipping subscription with dangling references", "key", sub.Key(), "error", err)
			continue
		}
		dtos = append(dtos, dto.ToSubscriptionDTO(sub, refs, now))
	}

	uc.logger.Debugw("subscriptions listed",
		"count", len(dtos),
		"total", total,
		"keys", lo.Map(subs, func(s *subscription.Subscription, _ int) string { return s.Key() }),
	)

	return &ListSubscriptionsResult{Subscriptions: dtos, Total: total}, nil
}
