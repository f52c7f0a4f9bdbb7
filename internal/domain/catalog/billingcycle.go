package catalog

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

// BillingCycle is a named period definition owned by a plan. Subscriptions
// are tied to a billing cycle, not directly to a plan; the plan and product
// of a subscription are derived from its cycle.
//
// Invariant: durationValue is nil iff durationUnit is forever; otherwise
// durationValue >= 1. Billing cycle keys are globally unique.
type BillingCycle struct {
	id                uint
	planID            uint
	key               string
	displayName       string
	description       string
	status            vo.EntityStatus
	durationValue     *int
	durationUnit      vo.DurationUnit
	externalProductID *string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewBillingCycle creates a new billing cycle under a plan
func NewBillingCycle(planID uint, key, displayName, description string, durationValue *int, durationUnit vo.DurationUnit) (*BillingCycle, error) {
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if key == "" {
		return nil, fmt.Errorf("billing cycle key is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("billing cycle display name is required")
	}
	if !durationUnit.IsValid() {
		return nil, fmt.Errorf("invalid duration unit: %s", durationUnit)
	}
	if err := validateDuration(durationValue, durationUnit); err != nil {
		return nil, err
	}

	now := time.Now()
	return &BillingCycle{
		planID:        planID,
		key:           key,
		displayName:   displayName,
		description:   description,
		status:        vo.StatusActive,
		durationValue: durationValue,
		durationUnit:  durationUnit,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructBillingCycle reconstructs a billing cycle from persistence
func ReconstructBillingCycle(
	id, planID uint,
	key, displayName, description string,
	status vo.EntityStatus,
	durationValue *int,
	durationUnit vo.DurationUnit,
	externalProductID *string,
	version int,
	createdAt, updatedAt time.Time,
) (*BillingCycle, error) {
	if id == 0 {
		return nil, fmt.Errorf("billing cycle ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if key == "" {
		return nil, fmt.Errorf("billing cycle key is required")
	}
	if !vo.ValidEntityStatuses[status] {
		return nil, fmt.Errorf("invalid billing cycle status: %s", status)
	}
	if !durationUnit.IsValid() {
		return nil, fmt.Errorf("invalid duration unit: %s", durationUnit)
	}
	if err := validateDuration(durationValue, durationUnit); err != nil {
		return nil, err
	}

	return &BillingCycle{
		id:                id,
		planID:            planID,
		key:               key,
		displayName:       displayName,
		description:       description,
		status:            status,
		durationValue:     durationValue,
		durationUnit:      durationUnit,
		externalProductID: externalProductID,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func validateDuration(value *int, unit vo.DurationUnit) error {
	if unit == vo.DurationForever {
		if value != nil {
			return fmt.Errorf("duration value must be absent for forever cycles")
		}
		return nil
	}
	if value == nil {
		return fmt.Errorf("duration value is required for %s cycles", unit)
	}
	if *value < 1 {
		return fmt.Errorf("duration value must be at least 1, got %d", *value)
	}
	return nil
}

func (b *BillingCycle) ID() uint                      { return b.id }
func (b *BillingCycle) PlanID() uint                  { return b.planID }
func (b *BillingCycle) Key() string                   { return b.key }
func (b *BillingCycle) DisplayName() string           { return b.displayName }
func (b *BillingCycle) Description() string           { return b.description }
func (b *BillingCycle) Status() vo.EntityStatus       { return b.status }
func (b *BillingCycle) DurationValue() *int           { return b.durationValue }
func (b *BillingCycle) DurationUnit() vo.DurationUnit { return b.durationUnit }
func (b *BillingCycle) ExternalProductID() *string    { return b.externalProductID }
func (b *BillingCycle) Version() int                  { return b.version }
func (b *BillingCycle) CreatedAt() time.Time          { return b.createdAt }
func (b *BillingCycle) UpdatedAt() time.Time          { return b.updatedAt }

// SetID sets the billing cycle ID (only for persistence layer use)
func (b *BillingCycle) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("billing cycle ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("billing cycle ID cannot be zero")
	}
	b.id = id
	return nil
}

// PeriodEnd computes the end of a period starting at start. Returns nil for
// forever cycles.
func (b *BillingCycle) PeriodEnd(start time.Time) *time.Time {
	if b.durationUnit == vo.DurationForever {
		return nil
	}
	value := 1
	if b.durationValue != nil {
		value = *b.durationValue
	}
	return b.durationUnit.AddTo(start, value)
}

// Update changes the mutable descriptive attributes. Key, plan and duration
// are immutable after creation; repointing subscriptions is done by changing
// their billing cycle, not by mutating the cycle itself.
func (b *BillingCycle) Update(displayName, description *string, externalProductID *string) error {
	if displayName != nil {
		if *displayName == "" {
			return fmt.Errorf("billing cycle display name cannot be empty")
		}
		b.displayName = *displayName
	}
	if description != nil {
		b.description = *description
	}
	if externalProductID != nil {
		if *externalProductID == "" {
			b.externalProductID = nil
		} else {
			b.externalProductID = externalProductID
		}
	}
	b.updatedAt = time.Now()
	b.version++
	return nil
}

// Archive marks the billing cycle as archived
func (b *BillingCycle) Archive() error {
	if b.status == vo.StatusArchived {
		return nil
	}
	b.status = vo.StatusArchived
	b.updatedAt = time.Now()
	b.version++
	return nil
}

// Unarchive restores an archived billing cycle to active
func (b *BillingCycle) Unarchive() error {
	if b.status != vo.StatusArchived {
		return fmt.Errorf("billing cycle is not archived")
	}
	b.status = vo.StatusActive
	b.updatedAt = time.Now()
	b.version++
	return nil
}

func (b *BillingCycle) IsActive() bool {
	return b.status == vo.StatusActive
}
