package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/mappers"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/db"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type BillingCycleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BillingCycleMapper
	logger logger.Interface
}

func NewBillingCycleRepository(db *gorm.DB, logger logger.Interface) catalog.BillingCycleRepository {
	return &BillingCycleRepositoryImpl{
		db:     db,
		mapper: mappers.NewBillingCycleMapper(),
		logger: logger,
	}
}

func (r *BillingCycleRepositoryImpl) Create(ctx context.Context, cycle *catalog.BillingCycle) error {
	model, err := r.mapper.ToModel(cycle)
	if err != nil {
		r.logger.Errorw("failed to map billing cycle entity to model", "error", err)
		return fmt.Errorf("failed to map billing cycle entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create billing cycle in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create billing cycle: %w", err)
	}

	if err := cycle.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set billing cycle ID: %w", err)
	}

	r.logger.Infow("billing cycle created", "id", model.ID, "key", model.Key, "plan_id", model.PlanID)
	return nil
}

func (r *BillingCycleRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.BillingCycle, error) {
	var model models.BillingCycleModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get billing cycle by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get billing cycle: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BillingCycleRepositoryImpl) GetByKey(ctx context.Context, key string) (*catalog.BillingCycle, error) {
	var model models.BillingCycleModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get billing cycle by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get billing cycle: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *BillingCycleRepositoryImpl) GetByPlanID(ctx context.Context, planID uint) ([]*catalog.BillingCycle, error) {
	var modelList []*models.BillingCycleModel

	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get billing cycles by plan ID", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to get billing cycles: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *BillingCycleRepositoryImpl) Update(ctx context.Context, cycle *catalog.BillingCycle) error {
	model, err := r.mapper.ToModel(cycle)
	if err != nil {
		r.logger.Errorw("failed to map billing cycle entity to model", "id", cycle.ID(), "error", err)
		return fmt.Errorf("failed to map billing cycle entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":        model.DisplayName,
			"description":         model.Description,
			"status":              model.Status,
			"external_product_id": model.ExternalProductID,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update billing cycle", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update billing cycle: %w", result.Error)
	}

	return nil
}

func (r *BillingCycleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.BillingCycleModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete billing cycle", "id", id, "error", err)
		return fmt.Errorf("failed to delete billing cycle: %w", err)
	}

	r.logger.Infow("billing cycle deleted", "id", id)
	return nil
}
