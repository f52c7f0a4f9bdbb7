package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type RemoveFeatureOverrideCommand struct {
	SubscriptionKey string
	FeatureKey      string
}

// RemoveFeatureOverrideUseCase removes an override if present; removing a
// non-existent override is a no-op.
type RemoveFeatureOverrideUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	featureRepo      catalog.FeatureRepository
	invalidation     *entitlementInvalidation
	logger           logger.Interface
}

func NewRemoveFeatureOverrideUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	featureRepo catalog.FeatureRepository,
	logger logger.Interface,
) *RemoveFeatureOverrideUseCase {
	return &RemoveFeatureOverrideUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		featureRepo:      featureRepo,
		logger:           logger,
	}
}

func (uc *RemoveFeatureOverrideUseCase) Execute(ctx context.Context, cmd RemoveFeatureOverrideCommand) error {
	if cmd.SubscriptionKey == "" {
		return errors.NewValidationError("subscription key is required")
	}
	if cmd.FeatureKey == "" {
		return errors.NewValidationError("feature key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.SubscriptionKey)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.SubscriptionKey)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", cmd.SubscriptionKey)
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.FeatureKey)
	if err != nil {
		uc.logger.Errorw("failed to get feature", "error", err, "feature_key", cmd.FeatureKey)
		return fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return errors.NewNotFoundError("feature not found", cmd.FeatureKey)
	}

	if err := uc.overrideRepo.Delete(ctx, sub.ID(), feature.ID()); err != nil {
		uc.logger.Errorw("failed to remove feature override", "error", err,
			"subscription_key", cmd.SubscriptionKey, "feature_key", cmd.FeatureKey)
		return fmt.Errorf("failed to remove feature override: %w", err)
	}

	uc.invalidation.run(ctx, sub.CustomerID())

	uc.logger.Infow("feature override removed",
		"subscription_key", cmd.SubscriptionKey,
		"feature_key", cmd.FeatureKey,
	)
	return nil
}

// SetInvalidation enables entitlement cache busting after override removal.
func (uc *RemoveFeatureOverrideUseCase) SetInvalidation(customerRepo customer.Repository, invalidator EntitlementInvalidator) {
	uc.invalidation = &entitlementInvalidation{customerRepo: customerRepo, invalidator: invalidator, logger: uc.logger}
}
