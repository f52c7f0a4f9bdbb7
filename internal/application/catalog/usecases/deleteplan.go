package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeletePlanCommand struct {
	Key string
}

// DeletePlanUseCase removes a plan together with its billing cycles and
// feature values. Deletion is blocked while subscriptions reference the plan.
type DeletePlanUseCase struct {
	planRepo         catalog.PlanRepository
	planFeatureRepo  catalog.PlanFeatureRepository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewDeletePlanUseCase(
	planRepo catalog.PlanRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:         planRepo,
		planFeatureRepo:  planFeatureRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, cmd DeletePlanCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found", cmd.Key)
	}

	count, err := uc.subscriptionRepo.CountByPlanID(ctx, plan.ID())
	if err != nil {
		return fmt.Errorf("failed to count subscriptions: %w", err)
	}
	if count > 0 {
		return errors.NewPreconditionFailedError("plan has subscriptions", cmd.Key)
	}

	if err := uc.planFeatureRepo.DeleteByPlanID(ctx, plan.ID()); err != nil {
		return fmt.Errorf("failed to delete plan features: %w", err)
	}

	if err := uc.planRepo.Delete(ctx, plan.ID()); err != nil {
		uc.logger.Errorw("failed to delete plan", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	uc.logger.Infow("plan deleted", "key", cmd.Key)
	return nil
}
