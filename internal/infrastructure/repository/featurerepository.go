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

var allowedFeatureSortByFields = map[string]bool{
	"id":           true,
	"key":          true,
	"display_name": true,
	"group_name":   true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
}

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.FeatureMapper
	logger logger.Interface
}

func NewFeatureRepository(db *gorm.DB, logger logger.Interface) catalog.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mappers.NewFeatureMapper(),
		logger: logger,
	}
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *catalog.Feature) error {
	model, err := r.mapper.ToModel(feature)
	if err != nil {
		r.logger.Errorw("failed to map feature entity to model", "error", err)
		return fmt.Errorf("failed to map feature entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create feature in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create feature: %w", err)
	}

	if err := feature.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set feature ID: %w", err)
	}

	r.logger.Infow("feature created", "id", model.ID, "key", model.Key)
	return nil
}

func (r *FeatureRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Feature, error) {
	var model models.FeatureModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get feature by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *FeatureRepositoryImpl) GetByKey(ctx context.Context, key string) (*catalog.Feature, error) {
	var model models.FeatureModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get feature by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *FeatureRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*catalog.Feature, error) {
	if len(ids) == 0 {
		return []*catalog.Feature{}, nil
	}

	var modelList []*models.FeatureModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get features by IDs", "error", err)
		return nil, fmt.Errorf("failed to get features: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *catalog.Feature) error {
	model, err := r.mapper.ToModel(feature)
	if err != nil {
		r.logger.Errorw("failed to map feature entity to model", "id", feature.ID(), "error", err)
		return fmt.Errorf("failed to map feature entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":  model.DisplayName,
			"description":   model.Description,
			"default_value": model.DefaultValue,
			"group_name":    model.GroupName,
			"status":        model.Status,
			"validator":     model.Validator,
			"metadata":      model.Metadata,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update feature", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update feature: %w", result.Error)
	}

	return nil
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.FeatureModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete feature", "id", id, "error", err)
		return fmt.Errorf("failed to delete feature: %w", err)
	}

	r.logger.Infow("feature deleted", "id", id)
	return nil
}

func (r *FeatureRepositoryImpl) List(ctx context.Context, filter catalog.FeatureFilter) ([]*catalog.Feature, int64, error) {
	var modelList []*models.FeatureModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FeatureModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.GroupName != nil {
		query = query.Where("group_name = ?", *filter.GroupName)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count features", "error", err)
		return nil, 0, fmt.Errorf("failed to count features: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" || !allowedFeatureSortByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if filter.IsDescending() {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list features", "error", err)
		return nil, 0, fmt.Errorf("failed to list features: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map features: %w", err)
	}

	return entities, total, nil
}
