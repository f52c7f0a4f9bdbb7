package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/subscription/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type AddFeatureOverrideCommand struct {
	SubscriptionKey string
	FeatureKey      string
	Value           string
	OverrideType    string
}

// AddFeatureOverrideUseCase sets a per-subscription feature value. At most one
// override exists per (subscription, feature); adding again overwrites.
type AddFeatureOverrideUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	featureRepo      catalog.FeatureRepository
	invalidation     *entitlementInvalidation
	logger           logger.Interface
}

func NewAddFeatureOverrideUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	featureRepo catalog.FeatureRepository,
	logger logger.Interface,
) *AddFeatureOverrideUseCase {
	return &AddFeatureOverrideUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		featureRepo:      featureRepo,
		logger:           logger,
	}
}

func (uc *AddFeatureOverrideUseCase) Execute(ctx context.Context, cmd AddFeatureOverrideCommand) (*dto.FeatureOverrideDTO, error) {
	if cmd.SubscriptionKey == "" {
		return nil, errors.NewValidationError("subscription key is required")
	}
	if cmd.FeatureKey == "" {
		return nil, errors.NewValidationError("feature key is required")
	}
	overrideType := vo.OverrideType(cmd.OverrideType)
	if !overrideType.IsValid() {
		return nil, errors.NewValidationError("invalid override type", cmd.OverrideType)
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.SubscriptionKey)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.SubscriptionKey)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found", cmd.SubscriptionKey)
	}
	if sub.IsArchived() {
		return nil, errors.NewDomainError("cannot add override to an archived subscription", cmd.SubscriptionKey)
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.FeatureKey)
	if err != nil {
		uc.logger.Errorw("failed to get feature", "error", err, "feature_key", cmd.FeatureKey)
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return nil, errors.NewNotFoundError("feature not found", cmd.FeatureKey)
	}

	if err := feature.ValidateValue(cmd.Value); err != nil {
		return nil, errors.NewValidationError("override value does not match feature value type", err.Error())
	}

	override, err := subscription.NewFeatureOverride(sub.ID(), feature.ID(), cmd.Value, overrideType)
	if err != nil {
		return nil, errors.NewValidationError("invalid feature override", err.Error())
	}

	if err := uc.overrideRepo.Upsert(ctx, override); err != nil {
		uc.logger.Errorw("failed to save feature override", "error", err,
			"subscription_key", cmd.SubscriptionKey, "feature_key", cmd.FeatureKey)
		return nil, fmt.Errorf("failed to save feature override: %w", err)
	}

	uc.invalidation.run(ctx, sub.CustomerID())

	uc.logger.Infow("feature override set",
		"subscription_key", cmd.SubscriptionKey,
		"feature_key", cmd.FeatureKey,
		"override_type", overrideType.String(),
	)

	return dto.ToFeatureOverrideDTO(override, sub.Key(), feature.Key()), nil
}

// SetInvalidation enables entitlement cache busting after override writes.
func (uc *AddFeatureOverrideUseCase) SetInvalidation(customerRepo customer.Repository, invalidator EntitlementInvalidator) {
	uc.invalidation = &entitlementInvalidation{customerRepo: customerRepo, invalidator: invalidator, logger: uc.logger}
}
