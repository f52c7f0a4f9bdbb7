// Package repository provides gorm-backed implementations of the domain
// repository interfaces.
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

// allowedProductSortByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedProductSortByFields = map[string]bool{
	"id":           true,
	"key":          true,
	"display_name": true,
	"status":       true,
	"created_at":   true,
	"updated_at":   true,
}

type ProductRepositoryImpl struct {
	db            *gorm.DB
	mapper        mappers.ProductMapper
	featureMapper mappers.FeatureMapper
	logger        logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) catalog.ProductRepository {
	return &ProductRepositoryImpl{
		db:            db,
		mapper:        mappers.NewProductMapper(),
		featureMapper: mappers.NewFeatureMapper(),
		logger:        logger,
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *catalog.Product) error {
	model, err := r.mapper.ToModel(product)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create product in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := product.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set product ID: %w", err)
	}

	r.logger.Infow("product created", "id", model.ID, "key", model.Key)
	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model models.ProductModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductRepositoryImpl) GetByKey(ctx context.Context, key string) (*catalog.Product, error) {
	var model models.ProductModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get product by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *catalog.Product) error {
	model, err := r.mapper.ToModel(product)
	if err != nil {
		r.logger.Errorw("failed to map product entity to model", "id", product.ID(), "error", err)
		return fmt.Errorf("failed to map product entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name": model.DisplayName,
			"description":  model.Description,
			"status":       model.Status,
			"metadata":     model.Metadata,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update product", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update product: %w", result.Error)
	}

	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.ProductModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Infow("product deleted", "id", id)
	return nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	var modelList []*models.ProductModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count products", "error", err)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" || !allowedProductSortByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if filter.IsDescending() {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list products", "error", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map products: %w", err)
	}

	return entities, total, nil
}

func (r *ProductRepositoryImpl) AssociateFeature(ctx context.Context, productID, featureID uint) error {
	var existing models.ProductFeatureModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND feature_id = ?", productID, featureID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check product feature association: %w", err)
	}

	assoc := &models.ProductFeatureModel{ProductID: productID, FeatureID: featureID}
	if err := r.db.WithContext(ctx).Create(assoc).Error; err != nil {
		r.logger.Errorw("failed to associate feature", "product_id", productID, "feature_id", featureID, "error", err)
		return fmt.Errorf("failed to associate feature: %w", err)
	}

	r.logger.Infow("feature associated with product", "product_id", productID, "feature_id", featureID)
	return nil
}

func (r *ProductRepositoryImpl) DissociateFeature(ctx context.Context, productID, featureID uint) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND feature_id = ?", productID, featureID).
		Delete(&models.ProductFeatureModel{}).Error; err != nil {
		r.logger.Errorw("failed to dissociate feature", "product_id", productID, "feature_id", featureID, "error", err)
		return fmt.Errorf("failed to dissociate feature: %w", err)
	}

	return nil
}

func (r *ProductRepositoryImpl) GetAssociatedFeatures(ctx context.Context, productID uint) ([]*catalog.Feature, error) {
	var featureModels []*models.FeatureModel

	if err := r.db.WithContext(ctx).
		Joins("JOIN product_features ON product_features.feature_id = features.id").
		Where("product_features.product_id = ?", productID).
		Order("features.id ASC").
		Find(&featureModels).Error; err != nil {
		r.logger.Errorw("failed to get associated features", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to get associated features: %w", err)
	}

	entities, err := r.featureMapper.ToEntities(featureModels)
	if err != nil {
		return nil, fmt.Errorf("failed to map features: %w", err)
	}

	return entities, nil
}
