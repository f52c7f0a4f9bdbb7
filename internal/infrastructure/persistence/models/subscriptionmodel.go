package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions. Status is
// never stored; it is derived from the date columns on read, and status
// filters are compiled into predicates over these columns.
type SubscriptionModel struct {
	ID                   uint      `gorm:"primarykey"`
	Key                  string    `gorm:"uniqueIndex;not null;size:100"`
	CustomerID           uint      `gorm:"not null;index:idx_subscription_customer"`
	PlanID               uint      `gorm:"not null;index:idx_subscription_plan"`
	BillingCycleID       uint      `gorm:"not null;index:idx_subscription_cycle"`
	ActivationDate       time.Time `gorm:"not null"`
	TrialEndDate         *time.Time
	ExpirationDate       *time.Time `gorm:"index:idx_subscription_expiration"`
	CancellationDate     *time.Time
	CurrentPeriodStart   time.Time `gorm:"not null"`
	CurrentPeriodEnd     *time.Time
	StripeSubscriptionID *string `gorm:"uniqueIndex:idx_subscription_stripe_id;size:255"`
	IsArchived           bool    `gorm:"not null;default:false;index:idx_subscription_archived"`
	TransitionedAt       *time.Time
	Metadata             datatypes.JSON
	Version              int `gorm:"not null;default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// FeatureOverrideModel stores per-subscription feature values. One row per
// (subscription, feature) pair; writes go through an upsert.
type FeatureOverrideModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;uniqueIndex:idx_override_sub_feature,priority:1"`
	FeatureID      uint   `gorm:"not null;uniqueIndex:idx_override_sub_feature,priority:2"`
	Value          string `gorm:"not null;size:1000"`
	OverrideType   string `gorm:"not null;size:20"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (FeatureOverrideModel) TableName() string {
	return constants.TableFeatureOverrides
}
