package mappers

import (
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
	ToModels(entities []*subscription.Subscription) ([]*models.SubscriptionModel, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.Key,
		model.CustomerID,
		model.PlanID,
		model.BillingCycleID,
		model.ActivationDate,
		model.TrialEndDate,
		model.ExpirationDate,
		model.CancellationDate,
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.StripeSubscriptionID,
		model.IsArchived,
		model.TransitionedAt,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.SubscriptionModel{
		ID:                   entity.ID(),
		Key:                  entity.Key(),
		CustomerID:           entity.CustomerID(),
		PlanID:               entity.PlanID(),
		BillingCycleID:       entity.BillingCycleID(),
		ActivationDate:       entity.ActivationDate(),
		TrialEndDate:         entity.TrialEndDate(),
		ExpirationDate:       entity.ExpirationDate(),
		CancellationDate:     entity.CancellationDate(),
		CurrentPeriodStart:   entity.CurrentPeriodStart(),
		CurrentPeriodEnd:     entity.CurrentPeriodEnd(),
		StripeSubscriptionID: entity.StripeSubscriptionID(),
		IsArchived:           entity.IsArchived(),
		TransitionedAt:       entity.TransitionedAt(),
		Metadata:             metadataJSON,
		Version:              entity.Version(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.SubscriptionModel) uint { return model.ID })
}

func (m *SubscriptionMapperImpl) ToModels(entities []*subscription.Subscription) ([]*models.SubscriptionModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *subscription.Subscription) uint { return entity.ID() })
}

type FeatureOverrideMapper interface {
	ToEntity(model *models.FeatureOverrideModel) (*subscription.FeatureOverride, error)
	ToModel(entity *subscription.FeatureOverride) (*models.FeatureOverrideModel, error)
	ToEntities(models []*models.FeatureOverrideModel) ([]*subscription.FeatureOverride, error)
}

type FeatureOverrideMapperImpl struct{}

func NewFeatureOverrideMapper() FeatureOverrideMapper {
	return &FeatureOverrideMapperImpl{}
}

func (m *FeatureOverrideMapperImpl) ToEntity(model *models.FeatureOverrideModel) (*subscription.FeatureOverride, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructFeatureOverride(
		model.ID,
		model.SubscriptionID,
		model.FeatureID,
		model.Value,
		vo.OverrideType(model.OverrideType),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct feature override entity: %w", err)
	}

	return entity, nil
}

func (m *FeatureOverrideMapperImpl) ToModel(entity *subscription.FeatureOverride) (*models.FeatureOverrideModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.FeatureOverrideModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		FeatureID:      entity.FeatureID(),
		Value:          entity.Value(),
		OverrideType:   entity.OverrideType().String(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *FeatureOverrideMapperImpl) ToEntities(modelList []*models.FeatureOverrideModel) ([]*subscription.FeatureOverride, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.FeatureOverrideModel) uint { return model.ID })
}
