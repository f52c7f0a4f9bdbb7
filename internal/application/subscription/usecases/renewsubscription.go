package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type RenewSubscriptionCommand struct {
	Key string
}

// RenewSubscriptionUseCase rolls a subscription into a new billing period
// starting now and clears its temporary overrides. Permanent overrides
// survive renewal.
type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	cycleRepo        catalog.BillingCycleRepository
	clock            clock.Clock
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	cycleRepo catalog.BillingCycleRepository,
	clock clock.Clock,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		cycleRepo:        cycleRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) error {
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

	cycle, err := uc.cycleRepo.GetByID(ctx, sub.BillingCycleID())
	if err != nil {
		return fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return errors.NewNotFoundError("billing cycle not found for subscription", cmd.Key)
	}

	now := uc.clock.Now()
	if err := sub.Renew(now, cycle.PeriodEnd(now)); err != nil {
		return errors.NewDomainError("cannot renew subscription", err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to renew subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to renew subscription: %w", err)
	}

	if err := uc.overrideRepo.DeleteTemporaryBySubscriptionID(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to clear temporary overrides on renewal", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to clear temporary overrides: %w", err)
	}

	uc.logger.Infow("subscription renewed",
		"key", cmd.Key,
		"period_start", sub.CurrentPeriodStart(),
		"period_end", sub.CurrentPeriodEnd(),
	)
	return nil
}
