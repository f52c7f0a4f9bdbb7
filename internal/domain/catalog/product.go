package catalog

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

// Product represents the product aggregate root. A product owns plans and
// offers a set of features through product-feature associations.
type Product struct {
	id          uint
	key         string
	displayName string
	description string
	status      vo.EntityStatus
	metadata    map[string]interface{}
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a new product
func NewProduct(key, displayName, description string) (*Product, error) {
	if key == "" {
		return nil, fmt.Errorf("product key is required")
	}
	if len(key) > 100 {
		return nil, fmt.Errorf("product key too long (max 100 characters)")
	}
	if displayName == "" {
		return nil, fmt.Errorf("product display name is required")
	}

	now := time.Now()
	return &Product{
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

// ReconstructProduct reconstructs a product from persistence
func ReconstructProduct(
	id uint,
	key, displayName, description string,
	status vo.EntityStatus,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("product key is required")
	}
	if !vo.ValidEntityStatuses[status] {
		return nil, fmt.Errorf("invalid product status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Product{
		id:          id,
		key:         key,
		displayName: displayName,
		description: description,
		status:      status,
		metadata:    metadata,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Product) ID() uint                         { return p.id }
func (p *Product) Key() string                      { return p.key }
func (p *Product) DisplayName() string              { return p.displayName }
func (p *Product) Description() string              { return p.description }
func (p *Product) Status() vo.EntityStatus          { return p.status }
func (p *Product) Metadata() map[string]interface{} { return p.metadata }
func (p *Product) Version() int                     { return p.version }
func (p *Product) CreatedAt() time.Time             { return p.createdAt }
func (p *Product) UpdatedAt() time.Time             { return p.updatedAt }

// SetID sets the product ID (only for persistence layer use)
func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = id
	return nil
}

// Update changes the mutable descriptive attributes. The key is immutable.
func (p *Product) Update(displayName, description *string, metadata map[string]interface{}) error {
	if displayName != nil {
		if *displayName == "" {
			return fmt.Errorf("product display name cannot be empty")
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

// Archive marks the product as archived
func (p *Product) Archive() error {
	if p.status == vo.StatusArchived {
		return nil
	}
	p.status = vo.StatusArchived
	p.updatedAt = time.Now()
	p.version++
	return nil
}

// Unarchive restores an archived product to active
func (p *Product) Unarchive() error {
	if p.status != vo.StatusArchived {
		return fmt.Errorf("product is not archived")
	}
	p.status = vo.StatusActive
	p.updatedAt = time.Now()
	p.version++
	return nil
}

func (p *Product) IsActive() bool {
	return p.status == vo.StatusActive
}
