package mappers

import (
	"fmt"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/mapper"
)

type CustomerMapper interface {
	ToEntity(model *models.CustomerModel) (*customer.Customer, error)
	ToModel(entity *customer.Customer) (*models.CustomerModel, error)
	ToEntities(models []*models.CustomerModel) ([]*customer.Customer, error)
	ToModels(entities []*customer.Customer) ([]*models.CustomerModel, error)
}

type CustomerMapperImpl struct{}

func NewCustomerMapper() CustomerMapper {
	return &CustomerMapperImpl{}
}

func (m *CustomerMapperImpl) ToEntity(model *models.CustomerModel) (*customer.Customer, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, err
	}

	entity, err := customer.ReconstructCustomer(
		model.ID,
		model.Key,
		model.DisplayName,
		model.Email,
		vo.EntityStatus(model.Status),
		model.ExternalID,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct customer entity: %w", err)
	}

	return entity, nil
}

func (m *CustomerMapperImpl) ToModel(entity *customer.Customer) (*models.CustomerModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadataJSON, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, err
	}

	return &models.CustomerModel{
		ID:          entity.ID(),
		Key:         entity.Key(),
		DisplayName: entity.DisplayName(),
		Email:       entity.Email(),
		Status:      entity.Status().String(),
		ExternalID:  entity.ExternalID(),
		Metadata:    metadataJSON,
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *CustomerMapperImpl) ToEntities(modelList []*models.CustomerModel) ([]*customer.Customer, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CustomerModel) uint { return model.ID })
}

func (m *CustomerMapperImpl) ToModels(entities []*customer.Customer) ([]*models.CustomerModel, error) {
	return mapper.MapSlicePtrWithID(entities, m.ToModel, func(entity *customer.Customer) uint { return entity.ID() })
}
