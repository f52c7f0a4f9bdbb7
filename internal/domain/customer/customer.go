package customer

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

// Customer is an account that holds subscriptions. Customers carry no
// authentication concerns here; the key links them to the tenant's own user
// or organization records.
type Customer struct {
	id          uint
	key         string
	displayName string
	email       *string
	status      vo.EntityStatus
	externalID  *string
	metadata    map[string]interface{}
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCustomer creates a new customer
func NewCustomer(key, displayName string, email *string) (*Customer, error) {
	if key == "" {
		return nil, fmt.Errorf("customer key is required")
	}
	if len(key) > 100 {
		return nil, fmt.Errorf("customer key too long (max 100 characters)")
	}
	if displayName == "" {
		return nil, fmt.Errorf("customer display name is required")
	}

	now := time.Now()
	return &Customer{
		key:         key,
		displayName: displayName,
		email:       email,
		status:      vo.StatusActive,
		metadata:    make(map[string]interface{}),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCustomer reconstructs a customer from persistence
func ReconstructCustomer(
	id uint,
	key, displayName string,
	email *string,
	status vo.EntityStatus,
	externalID *string,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("customer ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("customer key is required")
	}
	if !vo.ValidEntityStatuses[status] {
		return nil, fmt.Errorf("invalid customer status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Customer{
		id:          id,
		key:         key,
		displayName: displayName,
		email:       email,
		status:      status,
		externalID:  externalID,
		metadata:    metadata,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Customer) ID() uint                         { return c.id }
func (c *Customer) Key() string                      { return c.key }
func (c *Customer) DisplayName() string              { return c.displayName }
func (c *Customer) Email() *string                   { return c.email }
func (c *Customer) Status() vo.EntityStatus          { return c.status }
func (c *Customer) ExternalID() *string              { return c.externalID }
func (c *Customer) Metadata() map[string]interface{} { return c.metadata }
func (c *Customer) Version() int                     { return c.version }
func (c *Customer) CreatedAt() time.Time             { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time             { return c.updatedAt }

// SetID sets the customer ID (only for persistence layer use)
func (c *Customer) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("customer ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("customer ID cannot be zero")
	}
	c.id = id
	return nil
}

// Update changes the mutable descriptive attributes. Key is immutable.
func (c *Customer) Update(displayName *string, email *string, externalID *string, metadata map[string]interface{}) error {
	if displayName != nil {
		if *displayName == "" {
			return fmt.Errorf("customer display name cannot be empty")
		}
		c.displayName = *displayName
	}
	if email != nil {
		if *email == "" {
			c.email = nil
		} else {
			c.email = email
		}
	}
	if externalID != nil {
		if *externalID == "" {
			c.externalID = nil
		} else {
			c.externalID = externalID
		}
	}
	if metadata != nil {
		c.metadata = metadata
	}
	c.updatedAt = time.Now()
	c.version++
	return nil
}

// Archive marks the customer as archived
func (c *Customer) Archive() error {
	if c.status == vo.StatusArchived {
		return nil
	}
	c.status = vo.StatusArchived
	c.updatedAt = time.Now()
	c.version++
	return nil
}

// Unarchive restores an archived customer to active
func (c *Customer) Unarchive() error {
	if c.status != vo.StatusArchived {
		return fmt.Errorf("customer is not archived")
	}
	c.status = vo.StatusActive
	c.updatedAt = time.Now()
	c.version++
	return nil
}

func (c *Customer) IsArchived() bool {
	return c.status == vo.StatusArchived
}
