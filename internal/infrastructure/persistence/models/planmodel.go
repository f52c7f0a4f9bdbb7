package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// PlanModel is the persistence model for plans. Plan keys are globally
// unique so that lookups by key alone are unambiguous.
//
// TransitionCycleID is a soft reference: it is resolved at transition time
// and may dangle if the cycle is deleted, in which case the worker skips
// the subscription.
type PlanModel struct {
	ID                uint   `gorm:"primarykey"`
	ProductID         uint   `gorm:"not null;index:idx_plan_product"`
	Key               string `gorm:"uniqueIndex;not null;size:100"`
	DisplayName       string `gorm:"not null;size:255"`
	Description       string `gorm:"size:1000"`
	Status            string `gorm:"not null;size:20"`
	TransitionCycleID *uint  `gorm:"index:idx_plan_transition_cycle"`
	Metadata          datatypes.JSON
	Version           int `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}

// PlanFeatureModel stores the value a plan assigns to a feature. One row
// per (plan, feature) pair.
type PlanFeatureModel struct {
	ID        uint   `gorm:"primarykey"`
	PlanID    uint   `gorm:"not null;uniqueIndex:idx_plan_feature,priority:1"`
	FeatureID uint   `gorm:"not null;uniqueIndex:idx_plan_feature,priority:2;index:idx_feature_plans"`
	Value     string `gorm:"not null;size:1000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlanFeatureModel) TableName() string {
	return constants.TablePlanFeatures
}
