package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type ClearTemporaryOverridesCommand struct {
	SubscriptionKey string
}

// ClearTemporaryOverridesUseCase removes every temporary override on a
// subscription, leaving permanent ones untouched. Invoked at the end of a
// billing period, typically as part of renewal.
type ClearTemporaryOverridesUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	invalidation     *entitlementInvalidation
	logger           logger.Interface
}

func NewClearTemporaryOverridesUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	logger logger.Interface,
) *ClearTemporaryOverridesUseCase {
	return &ClearTemporaryOverridesUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		logger:           logger,
	}
}

func (uc *ClearTemporaryOverridesUseCase) Execute(ctx context.Context, cmd ClearTemporaryOverridesCommand) error {
	if cmd.SubscriptionKey == "" {
		return errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.SubscriptionKey)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.SubscriptionKey)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", cmd.SubscriptionKey)
	}
	if sub.IsArchived() {
		return errors.NewDomainError("cannot clear overrides on an archived subscription", cmd.SubscriptionKey)
	}

	if err := uc.overrideRepo.DeleteTemporaryBySubscriptionID(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to clear temporary overrides", "error", err, "key", cmd.SubscriptionKey)
		return fmt.Errorf("failed to clear temporary overrides: %w", err)
	}

	uc.invalidation.run(ctx, sub.CustomerID())

	uc.logger.Infow("temporary overrides cleared", "subscription_key", cmd.SubscriptionKey)
	return nil
}

// SetInvalidation enables entitlement cache busting after overrides are cleared.
func (uc *ClearTemporaryOverridesUseCase) SetInvalidation(customerRepo customer.Repository, invalidator EntitlementInvalidator) {
	uc.invalidation = &entitlementInvalidation{customerRepo: customerRepo, invalidator: invalidator, logger: uc.logger}
}
