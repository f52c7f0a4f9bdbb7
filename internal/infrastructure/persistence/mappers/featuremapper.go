package mappers

import (
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type FeatureMapper interface {
	ToEntity(model *models.FeatureModel) (*catalog.Feature, error)
	ToModel(entity *catalog.Feature) (*models.FeatureModel, error)
	ToEntities(models []*models.FeatureModel) ([]*catalog.Feature, error)
	ToModels(entities []*catalog.Feature) ([]*models.FeatureModel, error)
}

type FeatureMapperImpl struct{}

func NewFeatureMapper() FeatureMapper {
	return &FeatureMapperImpl{}
}

func (m *FeatureMapperImpl) ToEntity(model *models.FeatureModel) (*catalog.Feature, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructFeature(
		model.ID,
		model.Key,
		model.DisplayName,
		model.Description,
		vo.FeatureValueType(model.ValueType),
		model.DefaultValue,
		model.GroupName,
		vo.EntityStatus(model.Status),
		model.Validator,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct feature entity: %w", err)
	}

	return entity, nil
}

func (m *FeatureMapperImpl) ToModel(entity *catalog.Feature) (*models.FeatureModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.FeatureModel{
		ID:           entity.ID(),
		Key:          entity.Key(),
		DisplayName:  entity.DisplayName(),
		Description:  entity.Description(),
		ValueType:    entity.ValueType().String(),
		DefaultValue: entity.DefaultValue(),
		GroupName:    entity.GroupName(),
		Status:       entity.Status().String(),
		Validator:    entity.Validator(),
		Metadata:     metadataJSON,
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *FeatureMapperImpl) ToEntities(modelList []*models.FeatureModel) ([]*catalog.Feature, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.FeatureModel) uint { return model.ID })
}

func (m *FeatureMapperImpl) ToModels(entities []*catalog.Feature) ([]*models.FeatureModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *catalog.Feature) uint { return entity.ID() })
}
