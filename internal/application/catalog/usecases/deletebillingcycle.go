package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeleteBillingCycleCommand struct {
	Key string
}

// DeleteBillingCycleUseCase removes a billing cycle. Deletion is blocked
// while subscriptions reference the cycle.
type DeleteBillingCycleUseCase struct {
	cycleRepo        catalog.BillingCycleRepository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewDeleteBillingCycleUseCase(
	cycleRepo catalog.BillingCycleRepository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *DeleteBillingCycleUseCase {
	return &DeleteBillingCycleUseCase{
		cycleRepo:        cycleRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *DeleteBillingCycleUseCase) Execute(ctx context.Context, cmd DeleteBillingCycleCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("billing cycle key is required")
	}

	cycle, err := uc.cycleRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return errors.NewNotFoundError("billing cycle not found", cmd.Key)
	}

	count, err := uc.subscriptionRepo.CountByBillingCycleID(ctx, cycle.ID())
	if err != nil {
		return fmt.Errorf("failed to count subscriptions: %w", err)
	}
	if count > 0 {
		return errors.NewPreconditionFailedError("billing cycle has subscriptions", cmd.Key)
	}

	if err := uc.cycleRepo.Delete(ctx, cycle.ID()); err != nil {
		uc.logger.Errorw("failed to delete billing cycle", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete billing cycle: %w", err)
	}

	uc.logger.Infow("billing cycle deleted", "key", cmd.Key)
	return nil
}
