package catalog

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

// Plan represents a named tier of a product. A plan assigns values to some of
// the product's features (see PlanFeature) and owns its billing cycles.
//
// Plan keys are enforced globally unique, not just unique within the owning
// product: filter resolution and the transition worker look plans up by key
// alone, and a scoped key would make those lookups ambiguous.
type Plan struct {
	id                uint
	productID         uint
	key               string
	displayName       string
	description       string
	status            vo.EntityStatus
	transitionCycleID *uint
	metadata          map[string]interface{}
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPlan creates a new plan under a product
func NewPlan(productID uint, key, displayName, description string) (*Plan, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if key == "" {
		return nil, fmt.Errorf("plan key is required")
	}
	if len(key) > 100 {
		return nil, fmt.Errorf("plan key too long (max 100 characters)")
	}
	if displayName == "" {
		return nil, fmt.Errorf("plan display name is required")
	}

	now := time.Now()
	return &Plan{
		productID:   productID,
		key:         key,
		displayName: displayName,
		description: description,
		status:      vo.StatusActive,
		metadata:    make(map[string]interface{}),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence
func ReconstructPlan(
	id, productID uint,
	key, displayName, description string,
	status vo.EntityStatus,
	transitionCycleID *uint,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if key == "" {
		return nil, fmt.Errorf("plan key is required")
	}
	if !vo.ValidEntityStatuses[status] {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Plan{
		id:                id,
		productID:         productID,
		key:               key,
		displayName:       displayName,
		description:       description,
		status:            status,
		transitionCycleID: transitionCycleID,
		metadata:          metadata,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (p *Plan) ID() uint                         { return p.id }
func (p *Plan) ProductID() uint                  { return p.productID }
func (p *Plan) Key() string                      { return p.key }
func (p *Plan) DisplayName() string              { return p.displayName }
func (p *Plan) Description() string              { return p.description }
func (p *Plan) Status() vo.EntityStatus          { return p.status }
func (p *Plan) Metadata() map[string]interface{} { return p.metadata }
func (p *Plan) Version() int                     { return p.version }
func (p *Plan) CreatedAt() time.Time             { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time             { return p.updatedAt }

// TransitionCycleID returns the billing cycle successor subscriptions are
// opened on when a subscription of this plan expires, or nil when expired
// subscriptions simply lapse.
func (p *Plan) TransitionCycleID() *uint {
	return p.transitionCycleID
}

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// Update changes the mutable descriptive attributes. Key and product are immutable.
func (p *Plan) Update(displayName, description *string, metadata map[string]interface{}) error {
	if displayName != nil {
		if *displayName == "" {
			return fmt.Errorf("plan display name cannot be empty")
		}
		p.displayName = *displayName
	}
	if description != nil {
		p.description = *description
	}
	if metadata != nil {
		p.metadata = metadata
	}
	p.updatedAt = time.Now()
	p.version++
	return nil
}

// SetTransitionCycle points expired-subscription transitions at a billing
// cycle, or disables them when id is nil. The reference is soft: plans and
// billing cycles reference each other, so the cycle is resolved on demand.
func (p *Plan) SetTransitionCycle(id *uint) {
	p.transitionCycleID = id
	p.updatedAt = time.Now()
	p.version++
}

// Archive marks the plan as archived
func (p *Plan) Archive() error {
	if p.status == vo.StatusArchived {
		return nil
	}
	p.status = vo.StatusArchived
	p.updatedAt = time.Now()
	p.version++
	return nil
}

// Unarchive restores an archived plan to active
func (p *Plan) Unarchive() error {
	if p.status != vo.StatusArchived {
		return fmt.Errorf("plan is not archived")
	}
	p.status = vo.StatusActive
	p.updatedAt = time.Now()
	p.version++
	return nil
}

func (p *Plan) IsActive() bool {
	return p.status == vo.StatusActive
}
