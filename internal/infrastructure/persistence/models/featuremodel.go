package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// FeatureModel is the persistence model for features. Features are global;
// the key is unique across all products.
type FeatureModel struct {
	ID           uint    `gorm:"primarykey"`
	Key          string  `gorm:"uniqueIndex;not null;size:100"`
	DisplayName  string  `gorm:"not null;size:255"`
	Description  string  `gorm:"size:1000"`
	ValueType    string  `gorm:"not null;size:20"`
	DefaultValue string  `gorm:"not null;size:1000"`
	GroupName    *string `gorm:"size:100;index:idx_feature_group"`
	Status       string  `gorm:"not null;size:20"`
	Validator    *string `gorm:"size:500"`
	Metadata     datatypes.JSON
	Version      int `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (FeatureModel) TableName() string {
	return constants.TableFeatures
}
