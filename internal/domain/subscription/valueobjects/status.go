package valueobjects

// SubscriptionStatus is the derived lifecycle state of a subscription. It is
// never stored; it is computed from the subscription's dates and flags on
// every read.
type SubscriptionStatus string

const (
	StatusPending             SubscriptionStatus = "pending"
	StatusTrial               SubscriptionStatus = "trial"
	StatusActive              SubscriptionStatus = "active"
	StatusCancellationPending SubscriptionStatus = "cancellation_pending"
	StatusCancelled           SubscriptionStatus = "cancelled"
	StatusExpired             SubscriptionStatus = "expired"
	StatusArchived            SubscriptionStatus = "archived"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:             true,
	StatusTrial:               true,
	StatusActive:              true,
	StatusCancellationPending: true,
	StatusCancelled:           true,
	StatusExpired:             true,
	StatusArchived:            true,
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsResolvable reports whether a subscription in this status participates in
// feature-value resolution. A cancellation-pending subscription still
// resolves: the customer paid through the end of the current period.
func (s SubscriptionStatus) IsResolvable() bool {
	return s == StatusActive || s == StatusTrial || s == StatusCancellationPending
}
