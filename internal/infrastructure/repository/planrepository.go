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

var allowedPlanSortByFields = map[string]bool{
	"id":           true,
	"key":          true,
	"product_id":   true,
	"display_name": true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
}

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) catalog.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *catalog.Plan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to map plan entity to model", "error", err)
		return fmt.Errorf("failed to map plan entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}

	r.logger.Infow("plan created", "id", model.ID, "key", model.Key, "product_id", model.ProductID)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Plan, error) {
	var model models.PlanModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) GetByKey(ctx context.Context, key string) (*catalog.Plan, error) {
	var model models.PlanModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*catalog.Plan, error) {
	if len(ids) == 0 {
		return []*catalog.Plan{}, nil
	}

	var modelList []*models.PlanModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get plans by IDs", "error", err)
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *PlanRepositoryImpl) GetByProductID(ctx context.Context, productID uint) ([]*catalog.Plan, error) {
	var modelList []*models.PlanModel

	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get plans by product ID", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *catalog.Plan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to map plan entity to model", "id", plan.ID(), "error", err)
		return fmt.Errorf("failed to map plan entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":        model.DisplayName,
			"description":         model.Description,
			"status":              model.Status,
			"transition_cycle_id": model.TransitionCycleID,
			"metadata":            model.Metadata,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	return nil
}

func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.PlanModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete plan", "id", id, "error", err)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	r.logger.Infow("plan deleted", "id", id)
	return nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter catalog.PlanFilter) ([]*catalog.Plan, int64, error) {
	var modelList []*models.PlanModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PlanModel{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count plans", "error", err)
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" || !allowedPlanSortByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if filter.IsDescending() {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map plans: %w", err)
	}

	return entities, total, nil
}
