package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/subscription/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
)

// resolveRefs walks a subscription's reference chain (customer, billing cycle,
// plan, product) and returns the string keys for the external view.
func resolveRefs(
	ctx context.Context,
	sub *subscription.Subscription,
	customerRepo customer.Repository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
) (dto.Refs, error) {
	cust, err := customerRepo.GetByID(ctx, sub.CustomerID())
	if err != nil {
		return dto.Refs{}, fmt.Errorf("failed to resolve customer: %w", err)
	}
	if cust == nil {
		return dto.Refs{}, fmt.Errorf("customer %d not found", sub.CustomerID())
	}

	plan, err := planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return dto.Refs{}, fmt.Errorf("failed to resolve plan: %w", err)
	}
	if plan == nil {
		return dto.Refs{}, fmt.Errorf("plan %d not found", sub.PlanID())
	}

	product, err := productRepo.GetByID(ctx, plan.ProductID())
	if err != nil {
		return dto.Refs{}, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return dto.Refs{}, fmt.Errorf("product %d not found", plan.ProductID())
	}

	cycle, err := cycleRepo.GetByID(ctx, sub.BillingCycleID())
	if err != nil {
		return dto.Refs{}, fmt.Errorf("failed to resolve billing cycle: %w", err)
	}
	if cycle == nil {
		return dto.Refs{}, fmt.Errorf("billing cycle %d not found", sub.BillingCycleID())
	}

	return dto.Refs{
		CustomerKey:     cust.Key(),
		ProductKey:      product.Key(),
		PlanKey:         plan.Key(),
		BillingCycleKey: cycle.Key(),
	}, nil
}
