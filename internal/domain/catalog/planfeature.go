package catalog

import (
	"fmt"
	"time"
)

// PlanFeature is the value a plan assigns to one of its product's features.
// The value is string-encoded and must validate against the feature's value
// type; that check happens in the application layer where the feature is at
// hand.
type PlanFeature struct {
	id        uint
	planID    uint
	featureID uint
	value     string
	createdAt time.Time
	updatedAt time.Time
}

// NewPlanFeature creates a plan-feature value assignment
func NewPlanFeature(planID, featureID uint, value string) (*PlanFeature, error) {
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if featureID == 0 {
		return nil, fmt.Errorf("feature ID is required")
	}

	now := time.Now()
	return &PlanFeature{
		planID:    planID,
		featureID: featureID,
		value:     value,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPlanFeature reconstructs a plan-feature from persistence
func ReconstructPlanFeature(id, planID, featureID uint, value string, createdAt, updatedAt time.Time) (*PlanFeature, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan feature ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if featureID == 0 {
		return nil, fmt.Errorf("feature ID is required")
	}

	return &PlanFeature{
		id:        id,
		planID:    planID,
		featureID: featureID,
		value:     value,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (pf *PlanFeature) ID() uint             { return pf.id }
func (pf *PlanFeature) PlanID() uint         { return pf.planID }
func (pf *PlanFeature) FeatureID() uint      { return pf.featureID }
func (pf *PlanFeature) Value() string        { return pf.value }
func (pf *PlanFeature) CreatedAt() time.Time { return pf.createdAt }
func (pf *PlanFeature) UpdatedAt() time.Time { return pf.updatedAt }

// SetID sets the plan feature ID (only for persistence layer use)
func (pf *PlanFeature) SetID(id uint) error {
	if pf.id != 0 {
		return fmt.Errorf("plan feature ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan feature ID cannot be zero")
	}
	pf.id = id
	return nil
}

// SetValue overwrites the assigned value.
func (pf *PlanFeature) SetValue(value string) {
	pf.value = value
	pf.updatedAt = time.Now()
}
