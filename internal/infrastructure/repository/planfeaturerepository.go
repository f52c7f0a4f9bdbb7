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

type PlanFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanFeatureMapper
	logger logger.Interface
}

func NewPlanFeatureRepository(db *gorm.DB, logger logger.Interface) catalog.PlanFeatureRepository {
	return &PlanFeatureRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanFeatureMapper(),
		logger: logger,
	}
}

// Upsert is implemented as a read-then-write rather than a dialect-specific
// ON CONFLICT clause so behavior is identical across MySQL and SQLite.
func (r *PlanFeatureRepositoryImpl) Upsert(ctx context.Context, planFeature *catalog.PlanFeature) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.PlanFeatureModel
	err := tx.Where("plan_id = ? AND feature_id = ?", planFeature.PlanID(), planFeature.FeatureID()).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		model, mapErr := r.mapper.ToModel(planFeature)
		if mapErr != nil {
			return fmt.Errorf("failed to map plan feature entity: %w", mapErr)
		}
		if createErr := tx.Create(model).Error; createErr != nil {
			r.logger.Errorw("failed to create plan feature",
				"plan_id", planFeature.PlanID(), "feature_id", planFeature.FeatureID(), "error", createErr)
			return fmt.Errorf("failed to create plan feature: %w", createErr)
		}
		if planFeature.ID() == 0 {
			if setErr := planFeature.SetID(model.ID); setErr != nil {
				return fmt.Errorf("failed to set plan feature ID: %w", setErr)
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query plan feature: %w", err)
	}

	result := tx.Model(&models.PlanFeatureModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"value":      planFeature.Value(),
			"updated_at": planFeature.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan feature", "id", existing.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan feature: %w", result.Error)
	}

	return nil
}

func (r *PlanFeatureRepositoryImpl) GetByPlanID(ctx context.Context, planID uint) ([]*catalog.PlanFeature, error) {
	var modelList []*models.PlanFeatureModel

	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get plan features", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to get plan features: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *PlanFeatureRepositoryImpl) GetByPlanIDs(ctx context.Context, planIDs []uint) (map[uint][]*catalog.PlanFeature, error) {
	result := make(map[uint][]*catalog.PlanFeature)
	if len(planIDs) == 0 {
		return result, nil
	}

	var modelList []*models.PlanFeatureModel
	if err := r.db.WithContext(ctx).
		Where("plan_id IN ?", planIDs).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get plan features by plan IDs", "error", err)
		return nil, fmt.Errorf("failed to get plan features: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map plan features: %w", err)
	}

	for _, pf := range entities {
		result[pf.PlanID()] = append(result[pf.PlanID()], pf)
	}
	return result, nil
}

func (r *PlanFeatureRepositoryImpl) GetByPlanAndFeature(ctx context.Context, planID, featureID uint) (*catalog.PlanFeature, error) {
	var model models.PlanFeatureModel

	if err := r.db.WithContext(ctx).
		Where("plan_id = ? AND feature_id = ?", planID, featureID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan feature", "plan_id", planID, "feature_id", featureID, "error", err)
		return nil, fmt.Errorf("failed to get plan feature: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanFeatureRepositoryImpl) Delete(ctx context.Context, planID, featureID uint) error {
	if err := r.db.WithContext(ctx).
		Where("plan_id = ? AND feature_id = ?", planID, featureID).
		Delete(&models.PlanFeatureModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete plan feature", "plan_id", planID, "feature_id", featureID, "error", err)
		return fmt.Errorf("failed to delete plan feature: %w", err)
	}

	return nil
}

func (r *PlanFeatureRepositoryImpl) DeleteByPlanID(ctx context.Context, planID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("plan_id = ?", planID).Delete(&models.PlanFeatureModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete plan features by plan ID", "plan_id", planID, "error", err)
		return fmt.Errorf("failed to delete plan features: %w", err)
	}

	return nil
}
