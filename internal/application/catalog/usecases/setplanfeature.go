package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type SetPlanFeatureCommand struct {
	PlanKey    string
	FeatureKey string
	Value      string
}

// SetPlanFeatureUseCase assigns a plan's value for a feature. The value must
// parse under the feature's value type; setting an existing pair overwrites.
type SetPlanFeatureUseCase struct {
	planRepo        catalog.PlanRepository
	featureRepo     catalog.FeatureRepository
	planFeatureRepo catalog.PlanFeatureRepository
	logger          logger.Interface
}

func NewSetPlanFeatureUseCase(
	planRepo catalog.PlanRepository,
	featureRepo catalog.FeatureRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	logger logger.Interface,
) *SetPlanFeatureUseCase {
	return &SetPlanFeatureUseCase{
		planRepo:        planRepo,
		featureRepo:     featureRepo,
		planFeatureRepo: planFeatureRepo,
		logger:          logger,
	}
}

func (uc *SetPlanFeatureUseCase) Execute(ctx context.Context, cmd SetPlanFeatureCommand) (*dto.PlanFeatureDTO, error) {
	if cmd.PlanKey == "" || cmd.FeatureKey == "" {
		return nil, errors.NewValidationError("plan key and feature key are required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", cmd.PlanKey)
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.FeatureKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return nil, errors.NewNotFoundError("feature not found", cmd.FeatureKey)
	}

	if err := feature.ValidateValue(cmd.Value); err != nil {
		return nil, errors.NewValidationError("plan feature value does not match feature value type", err.Error())
	}

	planFeature, err := catalog.NewPlanFeature(plan.ID(), feature.ID(), cmd.Value)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan feature", err.Error())
	}

	if err := uc.planFeatureRepo.Upsert(ctx, planFeature); err != nil {
		uc.logger.Errorw("failed to save plan feature", "error", err,
			"plan_key", cmd.PlanKey, "feature_key", cmd.FeatureKey)
		return nil, fmt.Errorf("failed to save plan feature: %w", err)
	}

	uc.logger.Infow("plan feature set", "plan_key", cmd.PlanKey, "feature_key", cmd.FeatureKey)
	return dto.ToPlanFeatureDTO(planFeature, plan.Key(), feature.Key()), nil
}

type RemovePlanFeatureCommand struct {
	PlanKey    string
	FeatureKey string
}

type RemovePlanFeatureUseCase struct {
	planRepo        catalog.PlanRepository
	featureRepo     catalog.FeatureRepository
	planFeatureRepo catalog.PlanFeatureRepository
	logger          logger.Interface
}

func NewRemovePlanFeatureUseCase(
	planRepo catalog.PlanRepository,
	featureRepo catalog.FeatureRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	logger logger.Interface,
) *RemovePlanFeatureUseCase {
	return &RemovePlanFeatureUseCase{
		planRepo:        planRepo,
		featureRepo:     featureRepo,
		planFeatureRepo: planFeatureRepo,
		logger:          logger,
	}
}

func (uc *RemovePlanFeatureUseCase) Execute(ctx context.Context, cmd RemovePlanFeatureCommand) error {
	if cmd.PlanKey == "" || cmd.FeatureKey == "" {
		return errors.NewValidationError("plan key and feature key are required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.PlanKey)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found", cmd.PlanKey)
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.FeatureKey)
	if err != nil {
		return fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return errors.NewNotFoundError("feature not found", cmd.FeatureKey)
	}

	if err := uc.planFeatureRepo.Delete(ctx, plan.ID(), feature.ID()); err != nil {
		uc.logger.Errorw("failed to remove plan feature", "error", err,
			"plan_key", cmd.PlanKey, "feature_key", cmd.FeatureKey)
		return fmt.Errorf("failed to remove plan feature: %w", err)
	}

	uc.logger.Infow("plan feature removed", "plan_key", cmd.PlanKey, "feature_key", cmd.FeatureKey)
	return nil
}

type ListPlanFeaturesQuery struct {
	PlanKey string
}

type ListPlanFeaturesUseCase struct {
	planRepo        catalog.PlanRepository
	featureRepo     catalog.FeatureRepository
	planFeatureRepo catalog.PlanFeatureRepository
	logger          logger.Interface
}

func NewListPlanFeaturesUseCase(
	planRepo catalog.PlanRepository,
	featureRepo catalog.FeatureRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	logger logger.Interface,
) *ListPlanFeaturesUseCase {
	return &ListPlanFeaturesUseCase{
		planRepo:        planRepo,
		featureRepo:     featureRepo,
		planFeatureRepo: planFeatureRepo,
		logger:          logger,
	}
}

func (uc *ListPlanFeaturesUseCase) Execute(ctx context.Context, q ListPlanFeaturesQuery) ([]*dto.PlanFeatureDTO, error) {
	if q.PlanKey == "" {
		return nil, errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, q.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", q.PlanKey)
	}

	planFeatures, err := uc.planFeatureRepo.GetByPlanID(ctx, plan.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list plan features: %w", err)
	}

	dtos := make([]*dto.PlanFeatureDTO, 0, len(planFeatures))
	for _, pf := range planFeatures {
		feature, err := uc.featureRepo.GetByID(ctx, pf.FeatureID())
		if err != nil {
			return nil, fmt.Errorf("failed to get feature: %w", err)
		}
		if feature == nil {
			uc.logger.Warnw("plan feature references missing feature", "plan_key", q.PlanKey, "feature_id", pf.FeatureID())
			continue
		}
		dtos = append(dtos, dto.ToPlanFeatureDTO(pf, plan.Key(), feature.Key()))
	}
	return dtos, nil
}
