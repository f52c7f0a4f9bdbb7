package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/mappers"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/db"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

var allowedCustomerSortByFields = map[string]bool{
	"id":           true,
	"key":          true,
	"display_name": true,
	"email":        true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
}

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CustomerMapper
	logger logger.Interface
}

func NewCustomerRepository(db *gorm.DB, logger logger.Interface) customer.Repository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mappers.NewCustomerMapper(),
		logger: logger,
	}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, cust *customer.Customer) error {
	model, err := r.mapper.ToModel(cust)
	if err != nil {
		r.logger.Errorw("failed to map customer entity to model", "error", err)
		return fmt.Errorf("failed to map customer entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create customer in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create customer: %w", err)
	}

	if err := cust.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set customer ID: %w", err)
	}

	r.logger.Infow("customer created", "id", model.ID, "key", model.Key)
	return nil
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model models.CustomerModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get customer by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CustomerRepositoryImpl) GetByKey(ctx context.Context, key string) (*customer.Customer, error) {
	var model models.CustomerModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get customer by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, cust *customer.Customer) error {
	model, err := r.mapper.ToModel(cust)
	if err != nil {
		r.logger.Errorw("failed to map customer entity to model", "id", cust.ID(), "error", err)
		return fmt.Errorf("failed to map customer entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name": model.DisplayName,
			"email":        model.Email,
			"status":       model.Status,
			"external_id":  model.ExternalID,
			"metadata":     model.Metadata,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update customer", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}

	return nil
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.CustomerModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete customer", "id", id, "error", err)
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	r.logger.Infow("customer deleted", "id", id)
	return nil
}

func (r *CustomerRepositoryImpl) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	var modelList []*models.CustomerModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("key LIKE ? OR display_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count customers", "error", err)
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" || !allowedCustomerSortByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if filter.IsDescending() {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list customers", "error", err)
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map customers: %w", err)
	}

	return entities, total, nil
}
