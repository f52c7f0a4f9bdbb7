package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/mappers"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/db"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type FeatureOverrideRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.FeatureOverrideMapper
	logger logger.Interface
}

func NewFeatureOverrideRepository(db *gorm.DB, logger logger.Interface) subscription.OverrideRepository {
	return &FeatureOverrideRepositoryImpl{
		db:     db,
		mapper: mappers.NewFeatureOverrideMapper(),
		logger: logger,
	}
}

// Upsert is a read-then-write so behavior is identical across MySQL and
// SQLite.
func (r *FeatureOverrideRepositoryImpl) Upsert(ctx context.Context, override *subscription.FeatureOverride) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.FeatureOverrideModel
	err := tx.Where("subscription_id = ? AND feature_id = ?", override.SubscriptionID(), override.FeatureID()).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		model, mapErr := r.mapper.ToModel(override)
		if mapErr != nil {
			return fmt.Errorf("failed to map feature override entity: %w", mapErr)
		}
		if createErr := tx.Create(model).Error; createErr != nil {
			r.logger.Errorw("failed to create feature override",
				"subscription_id", override.SubscriptionID(), "feature_id", override.FeatureID(), "error", createErr)
			return fmt.Errorf("failed to create feature override: %w", createErr)
		}
		if override.ID() == 0 {
			if setErr := override.SetID(model.ID); setErr != nil {
				return fmt.Errorf("failed to set feature override ID: %w", setErr)
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query feature override: %w", err)
	}

	result := tx.Model(&models.FeatureOverrideModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"value":         override.Value(),
			"override_type": override.OverrideType().String(),
			"updated_at":    override.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update feature override", "id", existing.ID, "error", result.Error)
		return fmt.Errorf("failed to update feature override: %w", result.Error)
	}

	return nil
}

func (r *FeatureOverrideRepositoryImpl) GetBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*subscription.FeatureOverride, error) {
	var modelList []*models.FeatureOverrideModel

	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get feature overrides", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get feature overrides: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *FeatureOverrideRepositoryImpl) GetBySubscriptionIDs(ctx context.Context, subscriptionIDs []uint) (map[uint][]*subscription.FeatureOverride, error) {
	result := make(map[uint][]*subscription.FeatureOverride)
	if len(subscriptionIDs) == 0 {
		return result, nil
	}

	var modelList []*models.FeatureOverrideModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id IN ?", subscriptionIDs).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get feature overrides by subscription IDs", "error", err)
		return nil, fmt.Errorf("failed to get feature overrides: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map feature overrides: %w", err)
	}

	for _, o := range entities {
		result[o.SubscriptionID()] = append(result[o.SubscriptionID()], o)
	}
	return result, nil
}

func (r *FeatureOverrideRepositoryImpl) GetBySubscriptionAndFeature(ctx context.Context, subscriptionID, featureID uint) (*subscription.FeatureOverride, error) {
	var model models.FeatureOverrideModel

	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND feature_id = ?", subscriptionID, featureID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get feature override", "subscription_id", subscriptionID, "feature_id", featureID, "error", err)
		return nil, fmt.Errorf("failed to get feature override: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *FeatureOverrideRepositoryImpl) Delete(ctx context.Context, subscriptionID, featureID uint) error {
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND feature_id = ?", subscriptionID, featureID).
		Delete(&models.FeatureOverrideModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete feature override", "subscription_id", subscriptionID, "feature_id", featureID, "error", err)
		return fmt.Errorf("failed to delete feature override: %w", err)
	}

	return nil
}

func (r *FeatureOverrideRepositoryImpl) DeleteTemporaryBySubscriptionID(ctx context.Context, subscriptionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("subscription_id = ? AND override_type = ?", subscriptionID, vo.OverrideTemporary.String()).
		Delete(&models.FeatureOverrideModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete temporary feature overrides", "subscription_id", subscriptionID, "error", err)
		return fmt.Errorf("failed to delete temporary feature overrides: %w", err)
	}

	return nil
}

func (r *FeatureOverrideRepositoryImpl) DeleteBySubscriptionID(ctx context.Context, subscriptionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("subscription_id = ?", subscriptionID).
		Delete(&models.FeatureOverrideModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete feature overrides", "subscription_id", subscriptionID, "error", err)
		return fmt.Errorf("failed to delete feature overrides: %w", err)
	}

	return nil
}
