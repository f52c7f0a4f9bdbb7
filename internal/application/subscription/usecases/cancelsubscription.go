package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	Key string
}

// CancelSubscriptionUseCase records the cancellation date. The subscription
// keeps resolving until the end of its current period and then derives as
// cancelled.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            clock.Clock
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock clock.Clock,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) error {
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

	now := uc.clock.Now()
	if err := sub.Cancel(now); err != nil {
		return errors.NewDomainError("cannot cancel subscription", err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to cancel subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "key", cmd.Key, "status", sub.Status(now).String())
	return nil
}
