package models

import (
	"time"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// BillingCycleModel is the persistence model for billing cycles. Keys are
// globally unique. DurationValue is null exactly when DurationUnit is
// "forever".
type BillingCycleModel struct {
	ID                uint   `gorm:"primarykey"`
	PlanID            uint   `gorm:"not null;index:idx_cycle_plan"`
	Key               string `gorm:"uniqueIndex;not null;size:100"`
	DisplayName       string `gorm:"not null;size:255"`
	Description       string `gorm:"size:1000"`
	Status            string `gorm:"not null;size:20"`
	DurationValue     *int
	DurationUnit      string  `gorm:"not null;size:20"`
	ExternalProductID *string `gorm:"size:255;index:idx_cycle_external_product"`
	Version           int     `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BillingCycleModel) TableName() string {
	return constants.TableBillingCycles
}
