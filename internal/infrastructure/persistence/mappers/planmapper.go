package mappers

import (
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*catalog.Plan, error)
	ToModel(entity *catalog.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*catalog.Plan, error)
	ToModels(entities []*catalog.Plan) ([]*models.PlanModel, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*catalog.Plan, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructPlan(
		model.ID,
		model.ProductID,
		model.Key,
		model.DisplayName,
		model.Description,
		vo.EntityStatus(model.Status),
		model.TransitionCycleID,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}

	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *catalog.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.PlanModel{
		ID:                entity.ID(),
		ProductID:         entity.ProductID(),
		Key:               entity.Key(),
		DisplayName:       entity.DisplayName(),
		Description:       entity.Description(),
		Status:            entity.Status().String(),
		TransitionCycleID: entity.TransitionCycleID(),
		Metadata:          metadataJSON,
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *PlanMapperImpl) ToEntities(modelList []*models.PlanModel) ([]*catalog.Plan, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PlanModel) uint { return model.ID })
}

func (m *PlanMapperImpl) ToModels(entities []*catalog.Plan) ([]*models.PlanModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *catalog.Plan) uint { return entity.ID() })
}

type PlanFeatureMapper interface {
	ToEntity(model *models.PlanFeatureModel) (*catalog.PlanFeature, error)
	ToModel(entity *catalog.PlanFeature) (*models.PlanFeatureModel, error)
	ToEntities(models []*models.PlanFeatureModel) ([]*catalog.PlanFeature, error)
}

type PlanFeatureMapperImpl struct{}

func NewPlanFeatureMapper() PlanFeatureMapper {
	return &PlanFeatureMapperImpl{}
}

func (m *PlanFeatureMapperImpl) ToEntity(model *models.PlanFeatureModel) (*catalog.PlanFeature, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructPlanFeature(
		model.ID,
		model.PlanID,
		model.FeatureID,
		model.Value,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan feature entity: %w", err)
	}

	return entity, nil
}

func (m *PlanFeatureMapperImpl) ToModel(entity *catalog.PlanFeature) (*models.PlanFeatureModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanFeatureModel{
		ID:        entity.ID(),
		PlanID:    entity.PlanID(),
		FeatureID: entity.FeatureID(),
		Value:     entity.Value(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *PlanFeatureMapperImpl) ToEntities(modelList []*models.PlanFeatureModel) ([]*catalog.PlanFeature, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PlanFeatureModel) uint { return model.ID })
}
