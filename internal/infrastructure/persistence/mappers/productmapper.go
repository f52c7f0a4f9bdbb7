package mappers

import (
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type ProductMapper interface {
	ToEntity(model *models.ProductModel) (*catalog.Product, error)
	ToModel(entity *catalog.Product) (*models.ProductModel, error)
	ToEntities(models []*models.ProductModel) ([]*catalog.Product, error)
	ToModels(entities []*catalog.Product) ([]*models.ProductModel, error)
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToEntity(model *models.ProductModel) (*catalog.Product, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructProduct(
		model.ID,
		model.Key,
		model.DisplayName,
		model.Description,
		vo.EntityStatus(model.Status),
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct product entity: %w", err)
	}

	return entity, nil
}

func (m *ProductMapperImpl) ToModel(entity *catalog.Product) (*models.ProductModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.ProductModel{
		ID:          entity.ID(),
		Key:         entity.Key(),
		DisplayName: entity.DisplayName(),
		Description: entity.Description(),
		Status:      entity.Status().String(),
		Metadata:    metadataJSON,
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *ProductMapperImpl) ToEntities(modelList []*models.ProductModel) ([]*catalog.Product, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.ProductModel) uint { return model.ID })
}

func (m *ProductMapperImpl) ToModels(entities []*catalog.Product) ([]*models.ProductModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *catalog.Product) uint { return entity.ID() })
}
