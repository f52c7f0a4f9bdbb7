package catalog

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

// Feature represents a named capability or limit. Features are global: the
// same feature may be offered by many products. The default value must always
// parse under the feature's value type.
type Feature struct {
	id           uint
	key          string
	displayName  string
	description  string
	valueType    vo.FeatureValueType
	defaultValue string
	groupName    *string
	status       vo.EntityStatus
	validator    *string
	metadata     map[string]interface{}
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewFeature creates a new feature
func NewFeature(key, displayName, description string, valueType vo.FeatureValueType, defaultValue string) (*Feature, error) {
	if key == "" {
		return nil, fmt.Errorf("feature key is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("feature display name is required")
	}
	if !valueType.IsValid() {
		return nil, fmt.Errorf("invalid feature value type: %s", valueType)
	}
	if err := valueType.ValidateValue(defaultValue); err != nil {
		return nil, fmt.Errorf("invalid default value: %w", err)
	}

	now := time.Now()
	return &Feature{
		key:          key,
		displayName:  displayName,
		description:  description,
		valueType:    valueType,
		defaultValue: defaultValue,
		status:       vo.StatusActive,
		metadata:     make(map[string]interface{}),
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructFeature reconstructs a feature from persistence
func ReconstructFeature(
	id uint,
	key, displayName, description string,
	valueType vo.FeatureValueType,
	defaultValue string,
	groupName *string,
	status vo.EntityStatus,
	validator *string,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Feature, error) {
	if id == 0 {
		return nil, fmt.Errorf("feature ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("feature key is required")
	}
	if !valueType.IsValid() {
		return nil, fmt.Errorf("invalid feature value type: %s", valueType)
	}
	if !vo.ValidEntityStatuses[status] {
		return nil, fmt.Errorf("invalid feature status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Feature{
		id:           id,
		key:          key,
		displayName:  displayName,
		description:  description,
		valueType:    valueType,
		defaultValue: defaultValue,
		groupName:    groupName,
		status:       status,
		validator:    validator,
		metadata:     metadata,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (f *Feature) ID() uint                         { return f.id }
func (f *Feature) Key() string                      { return f.key }
func (f *Feature) DisplayName() string              { return f.displayName }
func (f *Feature) Description() string              { return f.description }
func (f *Feature) ValueType() vo.FeatureValueType   { return f.valueType }
func (f *Feature) DefaultValue() string             { return f.defaultValue }
func (f *Feature) GroupName() *string               { return f.groupName }
func (f *Feature) Status() vo.EntityStatus          { return f.status }
func (f *Feature) Validator() *string               { return f.validator }
func (f *Feature) Metadata() map[string]interface{} { return f.metadata }
func (f *Feature) Version() int                     { return f.version }
func (f *Feature) CreatedAt() time.Time             { return f.createdAt }
func (f *Feature) UpdatedAt() time.Time             { return f.updatedAt }

// SetID sets the feature ID (only for persistence layer use)
func (f *Feature) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("feature ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("feature ID cannot be zero")
	}
	f.id = id
	return nil
}

// SetGroupName assigns or clears the display group.
func (f *Feature) SetGroupName(groupName *string) {
	f.groupName = groupName
	f.updatedAt = time.Now()
	f.version++
}

// Update changes the mutable descriptive attributes. Key and value type are
// immutable; a new default value must parse under the existing value type.
func (f *Feature) Update(displayName, description, defaultValue *string, metadata map[string]interface{}) error {
	if displayName != nil {
		if *displayName == "" {
			return fmt.Errorf("feature display name cannot be empty")
		}
		f.displayName = *displayName
	}
	if description != nil {
		f.description = *description
	}
	if defaultValue != nil {
		if err := f.valueType.ValidateValue(*defaultValue); err != nil {
			return fmt.Errorf("invalid default value: %w", err)
		}
		f.defaultValue = *defaultValue
	}
	if metadata != nil {
		f.metadata = metadata
	}
	f.updatedAt = time.Now()
	f.version++
	return nil
}

// ValidateValue checks a candidate value against this feature's value type.
func (f *Feature) ValidateValue(value string) error {
	return f.valueType.ValidateValue(value)
}

// Archive marks the feature as archived
func (f *Feature) Archive() error {
	if f.status == vo.StatusArchived {
		return nil
	}
	f.status = vo.StatusArchived
	f.updatedAt = time.Now()
	f.version++
	return nil
}

// Unarchive restores an archived feature to active
func (f *Feature) Unarchive() error {
	if f.status != vo.StatusArchived {
		return fmt.Errorf("feature is not archived")
	}
	f.status = vo.StatusActive
	f.updatedAt = time.Now()
	f.version++
	return nil
}

func (f *Feature) IsActive() bool {
	return f.status == vo.StatusActive
}
