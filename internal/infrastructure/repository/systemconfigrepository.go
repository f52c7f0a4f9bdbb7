package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// SystemConfigRepository stores small operational key-value state, such as
// the transition worker's last successful run timestamp.
type SystemConfigRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSystemConfigRepository(db *gorm.DB, logger logger.Interface) *SystemConfigRepository {
	return &SystemConfigRepository{db: db, logger: logger}
}

func (r *SystemConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	var model models.SystemConfigModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to get system config: %w", err)
	}
	return model.Value, nil
}

func (r *SystemConfigRepository) SetValue(ctx context.Context, key, value string) error {
	var existing models.SystemConfigModel
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		model := &models.SystemConfigModel{Key: key, Value: value}
		if createErr := r.db.WithContext(ctx).Create(model).Error; createErr != nil {
			return fmt.Errorf("failed to create system config: %w", createErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query system config: %w", err)
	}

	if updateErr := r.db.WithContext(ctx).Model(&models.SystemConfigModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now().UTC()}).Error; updateErr != nil {
		return fmt.Errorf("failed to update system config: %w", updateErr)
	}
	return nil
}
