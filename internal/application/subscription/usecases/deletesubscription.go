package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeleteSubscriptionCommand struct {
	Key string
}

// DeleteSubscriptionUseCase physically removes a subscription and its
// overrides. Deletion is permitted regardless of status.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	logger           logger.Interface
}

func NewDeleteSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	logger logger.Interface,
) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		logger:           logger,
	}
}

func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, cmd DeleteSubscriptionCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", cmd.Key)
	}

	if err := uc.overrideRepo.DeleteBySubscriptionID(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to delete overrides", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete overrides: %w", err)
	}

	if err := uc.subscriptionRepo.Delete(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to delete subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	uc.logger.Infow("subscription deleted", "key", cmd.Key)
	return nil
}
