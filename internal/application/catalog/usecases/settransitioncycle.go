package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type SetTransitionCycleCommand struct {
	PlanKey string
	// BillingCycleKey is the fallback cycle expired subscriptions transition
	// to; nil disables transitions for the plan.
	BillingCycleKey *string
}

// SetTransitionCycleUseCase points a plan's expired-subscription fallback at
// a billing cycle. The reference is soft; the cycle may belong to any plan,
// typically a free one.
type SetTransitionCycleUseCase struct {
	planRepo  catalog.PlanRepository
	cycleRepo catalog.BillingCycleRepository
	logger    logger.Interface
}

func NewSetTransitionCycleUseCase(
	planRepo catalog.PlanRepository,
	cycleRepo catalog.BillingCycleRepository,
	logger logger.Interface,
) *SetTransitionCycleUseCase {
	return &SetTransitionCycleUseCase{
		planRepo:  planRepo,
		cycleRepo: cycleRepo,
		logger:    logger,
	}
}

func (uc *SetTransitionCycleUseCase) Execute(ctx context.Context, cmd SetTransitionCycleCommand) error {
	if cmd.PlanKey == "" {
		return errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.PlanKey)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "key", cmd.PlanKey)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found", cmd.PlanKey)
	}

	if cmd.BillingCycleKey == nil {
		plan.SetTransitionCycle(nil)
	} else {
		cycle, err := uc.cycleRepo.GetByKey(ctx, *cmd.BillingCycleKey)
		if err != nil {
			return fmt.Errorf("failed to get billing cycle: %w", err)
		}
		if cycle == nil {
			return errors.NewNotFoundError("billing cycle not found", *cmd.BillingCycleKey)
		}
		id := cycle.ID()
		plan.SetTransitionCycle(&id)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan transition cycle", "error", err, "key", cmd.PlanKey)
		return fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan transition cycle updated", "plan_key", cmd.PlanKey)
	return nil
}
