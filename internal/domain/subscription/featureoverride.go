package subscription

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
)

// FeatureOverride is a per-subscription feature value that supersedes the
// plan-assigned value. At most one override exists per (subscription, feature)
// pair. Temporary overrides are erased on renewal; permanent ones survive.
type FeatureOverride struct {
	id             uint
	subscriptionID uint
	featureID      uint
	value          string
	overrideType   vo.OverrideType
	createdAt      time.Time
	updatedAt      time.Time
}

// NewFeatureOverride creates a feature override
func NewFeatureOverride(subscriptionID, featureID uint, value string, overrideType vo.OverrideType) (*FeatureOverride, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if featureID == 0 {
		return nil, fmt.Errorf("feature ID is required")
	}
	if !overrideType.IsValid() {
		return nil, fmt.Errorf("invalid override type: %s", overrideType)
	}

	now := time.Now()
	return &FeatureOverride{
		subscriptionID: subscriptionID,
		featureID:      featureID,
		value:          value,
		overrideType:   overrideType,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructFeatureOverride reconstructs a feature override from persistence
func ReconstructFeatureOverride(
	id, subscriptionID, featureID uint,
	value string,
	overrideType vo.OverrideType,
	createdAt, updatedAt time.Time,
) (*FeatureOverride, error) {
	if id == 0 {
		return nil, fmt.Errorf("feature override ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if featureID == 0 {
		return nil, fmt.Errorf("feature ID is required")
	}
	if !overrideType.IsValid() {
		return nil, fmt.Errorf("invalid override type: %s", overrideType)
	}

	return &FeatureOverride{
		id:             id,
		subscriptionID: subscriptionID,
		featureID:      featureID,
		value:          value,
		overrideType:   overrideType,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (o *FeatureOverride) ID() uint                      { return o.id }
func (o *FeatureOverride) SubscriptionID() uint          { return o.subscriptionID }
func (o *FeatureOverride) FeatureID() uint               { return o.featureID }
func (o *FeatureOverride) Value() string                 { return o.value }
func (o *FeatureOverride) OverrideType() vo.OverrideType { return o.overrideType }
func (o *FeatureOverride) CreatedAt() time.Time          { return o.createdAt }
func (o *FeatureOverride) UpdatedAt() time.Time          { return o.updatedAt }

// SetID sets the override ID (only for persistence layer use)
func (o *FeatureOverride) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("feature override ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("feature override ID cannot be zero")
	}
	o.id = id
	return nil
}

// Replace overwrites the value and type of an existing override.
func (o *FeatureOverride) Replace(value string, overrideType vo.OverrideType) error {
	if !overrideType.IsValid() {
		return fmt.Errorf("invalid override type: %s", overrideType)
	}
	o.value = value
	o.overrideType = overrideType
	o.updatedAt = time.Now()
	return nil
}

func (o *FeatureOverride) IsTemporary() bool {
	return o.overrideType == vo.OverrideTemporary
}
