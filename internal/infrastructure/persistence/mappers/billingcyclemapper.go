package mappers

import (
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type BillingCycleMapper interface {
	ToEntity(model *models.BillingCycleModel) (*catalog.BillingCycle, error)
	ToModel(entity *catalog.BillingCycle) (*models.BillingCycleModel, error)
	ToEntities(models []*models.BillingCycleModel) ([]*catalog.BillingCycle, error)
	ToModels(entities []*catalog.BillingCycle) ([]*models.BillingCycleModel, error)
}

type BillingCycleMapperImpl struct{}

func NewBillingCycleMapper() BillingCycleMapper {
	return &BillingCycleMapperImpl{}
}

func (m *BillingCycleMapperImpl) ToEntity(model *models.BillingCycleModel) (*catalog.BillingCycle, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructBillingCycle(
		model.ID,
		model.PlanID,
		model.Key,
		model.DisplayName,
		model.Description,
		vo.EntityStatus(model.Status),
		model.DurationValue,
		vo.DurationUnit(model.DurationUnit),
		model.ExternalProductID,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct billing cycle entity: %w", err)
	}

	return entity, nil
}

func (m *BillingCycleMapperImpl) ToModel(entity *catalog.BillingCycle) (*models.BillingCycleModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.BillingCycleModel{
		ID:                entity.ID(),
		PlanID:            entity.PlanID(),
		Key:               entity.Key(),
		DisplayName:       entity.DisplayName(),
		Description:       entity.Description(),
		Status:            entity.Status().String(),
		DurationValue:     entity.DurationValue(),
		DurationUnit:      entity.DurationUnit().String(),
		ExternalProductID: entity.ExternalProductID(),
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *BillingCycleMapperImpl) ToEntities(modelList []*models.BillingCycleModel) ([]*catalog.BillingCycle, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.BillingCycleModel) uint { return model.ID })
}

func (m *BillingCycleMapperImpl) ToModels(entities []*catalog.BillingCycle) ([]*models.BillingCycleModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *catalog.BillingCycle) uint { return entity.ID() })
}
