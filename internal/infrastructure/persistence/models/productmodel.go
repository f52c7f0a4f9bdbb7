package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// ProductModel is the persistence model for products.
// This is the anti-corruption layer between domain and database.
type ProductModel struct {
	ID          uint   `gorm:"primarykey"`
	Key         string `gorm:"uniqueIndex;not null;size:100"`
	DisplayName string `gorm:"not null;size:255"`
	Description string `gorm:"size:1000"`
	Status      string `gorm:"not null;size:20;index:idx_product_status"`
	Metadata    datatypes.JSON
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string {
	return constants.TableProducts
}

// ProductFeatureModel is the many-to-many association between products and
// the features they offer.
type ProductFeatureModel struct {
	ID        uint `gorm:"primarykey"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_product_feature,priority:1"`
	FeatureID uint `gorm:"not null;uniqueIndex:idx_product_feature,priority:2;index:idx_feature_products"`
	CreatedAt time.Time
}

func (ProductFeatureModel) TableName() string {
	return constants.TableProductFeatures
}
