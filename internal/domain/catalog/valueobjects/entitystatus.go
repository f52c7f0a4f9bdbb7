package valueobjects

// EntityStatus is the lifecycle status shared by catalog entities
// (products, features, plans, billing cycles).
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
	StatusArchived EntityStatus = "archived"
)

func (s EntityStatus) String() string {
	return string(s)
}

func (s EntityStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusArchived
}

var ValidEntityStatuses = map[EntityStatus]bool{
	StatusActive:   true,
	StatusInactive: true,
	StatusArchived: true,
}
