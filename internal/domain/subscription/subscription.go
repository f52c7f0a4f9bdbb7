package subscription

import (
	"fmt"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
)

// Subscription is a customer's participation in a billing cycle over a period
// of time. The plan and product references are derived from the billing cycle
// and stored only for query efficiency; the billing cycle is the authoritative
// link.
//
// Status is not a field. It is derived from the dates and the archived flag on
// every read; see Status.
type Subscription struct {
	id                   uint
	key                  string
	customerID           uint
	planID               uint
	billingCycleID       uint
	activationDate       time.Time
	trialEndDate         *time.Time
	expirationDate       *time.Time
	cancellationDate     *time.Time
	currentPeriodStart   time.Time
	currentPeriodEnd     *time.Time
	stripeSubscriptionID *string
	isArchived           bool
	transitionedAt       *time.Time
	metadata             map[string]interface{}
	version              int
	createdAt            time.Time
	updatedAt            time.Time
}

// NewSubscription creates a new subscription. currentPeriodEnd is nil for
// forever cycles.
func NewSubscription(
	key string,
	customerID, planID, billingCycleID uint,
	activationDate time.Time,
	currentPeriodStart time.Time,
	currentPeriodEnd *time.Time,
) (*Subscription, error) {
	if key == "" {
		return nil, fmt.Errorf("subscription key is required")
	}
	if len(key) > 100 {
		return nil, fmt.Errorf("subscription key too long (max 100 characters)")
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if billingCycleID == 0 {
		return nil, fmt.Errorf("billing cycle ID is required")
	}
	if currentPeriodEnd != nil && !currentPeriodEnd.After(currentPeriodStart) {
		return nil, fmt.Errorf("current period end must be after current period start")
	}

	now := time.Now()
	return &Subscription{
		key:                key,
		customerID:         customerID,
		planID:             planID,
		billingCycleID:     billingCycleID,
		activationDate:     activationDate,
		currentPeriodStart: currentPeriodStart,
		currentPeriodEnd:   currentPeriodEnd,
		metadata:           make(map[string]interface{}),
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id uint,
	key string,
	customerID, planID, billingCycleID uint,
	activationDate time.Time,
	trialEndDate, expirationDate, cancellationDate *time.Time,
	currentPeriodStart time.Time,
	currentPeriodEnd *time.Time,
	stripeSubscriptionID *string,
	isArchived bool,
	transitionedAt *time.Time,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if key == "" {
		return nil, fmt.Errorf("subscription key is required")
	}
	if customerID == 0 || planID == 0 || billingCycleID == 0 {
		return nil, fmt.Errorf("subscription references are required")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:                   id,
		key:                  key,
		customerID:           customerID,
		planID:               planID,
		billingCycleID:       billingCycleID,
		activationDate:       activationDate,
		trialEndDate:         trialEndDate,
		expirationDate:       expirationDate,
		cancellationDate:     cancellationDate,
		currentPeriodStart:   currentPeriodStart,
		currentPeriodEnd:     currentPeriodEnd,
		stripeSubscriptionID: stripeSubscriptionID,
		isArchived:           isArchived,
		transitionedAt:       transitionedAt,
		metadata:             metadata,
		version:              version,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                         { return s.id }
func (s *Subscription) Key() string                      { return s.key }
func (s *Subscription) CustomerID() uint                 { return s.customerID }
func (s *Subscription) PlanID() uint                     { return s.planID }
func (s *Subscription) BillingCycleID() uint             { return s.billingCycleID }
func (s *Subscription) ActivationDate() time.Time        { return s.activationDate }
func (s *Subscription) TrialEndDate() *time.Time         { return s.trialEndDate }
func (s *Subscription) ExpirationDate() *time.Time       { return s.expirationDate }
func (s *Subscription) CancellationDate() *time.Time     { return s.cancellationDate }
func (s *Subscription) CurrentPeriodStart() time.Time    { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() *time.Time     { return s.currentPeriodEnd }
func (s *Subscription) StripeSubscriptionID() *string    { return s.stripeSubscriptionID }
func (s *Subscription) IsArchived() bool                 { return s.isArchived }
func (s *Subscription) TransitionedAt() *time.Time       { return s.transitionedAt }
func (s *Subscription) Metadata() map[string]interface{} { return s.metadata }
func (s *Subscription) Version() int                     { return s.version }
func (s *Subscription) CreatedAt() time.Time             { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time             { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Status derives the lifecycle status at the given instant. The checks are
// ordered; the first match wins:
//
//	archived flag               -> archived
//	cancelled, period over      -> cancelled
//	cancelled, period running   -> cancellation_pending
//	expiration date passed      -> expired
//	trial end in the future     -> trial
//	activation in the future    -> pending
//	otherwise                   -> active
//
// A cancelled subscription with no period end (forever cycle) is treated as
// cancelled once the cancellation date has passed.
func (s *Subscription) Status(now time.Time) vo.SubscriptionStatus {
	if s.isArchived {
		return vo.StatusArchived
	}
	if s.cancellationDate != nil {
		if s.currentPeriodEnd != nil {
			if !s.currentPeriodEnd.After(now) {
				return vo.StatusCancelled
			}
			return vo.StatusCancellationPending
		}
		if !s.cancellationDate.After(now) {
			return vo.StatusCancelled
		}
		return vo.StatusCancellationPending
	}
	if s.expirationDate != nil && !s.expirationDate.After(now) {
		return vo.StatusExpired
	}
	if s.trialEndDate != nil && s.trialEndDate.After(now) {
		return vo.StatusTrial
	}
	if s.activationDate.After(now) {
		return vo.StatusPending
	}
	return vo.StatusActive
}

// IsResolvable reports whether the subscription participates in feature-value
// resolution at the given instant.
func (s *Subscription) IsResolvable(now time.Time) bool {
	return s.Status(now).IsResolvable()
}

// ChangeBillingCycle repoints the subscription at a different billing cycle
// and its owning plan. This is how plan upgrades and downgrades are expressed.
func (s *Subscription) ChangeBillingCycle(billingCycleID, planID uint) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	if billingCycleID == 0 || planID == 0 {
		return fmt.Errorf("billing cycle and plan IDs are required")
	}
	s.billingCycleID = billingCycleID
	s.planID = planID
	s.touch()
	return nil
}

// SetTrialEndDate sets or clears the trial end. Clearing it converts a trial
// to active.
func (s *Subscription) SetTrialEndDate(trialEnd *time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	s.trialEndDate = trialEnd
	s.touch()
	return nil
}

// SetExpirationDate sets or clears the expiration date.
func (s *Subscription) SetExpirationDate(expiration *time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	s.expirationDate = expiration
	s.touch()
	return nil
}

// Cancel records the cancellation date. The subscription stays usable until
// the end of its current period.
func (s *Subscription) Cancel(at time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	if s.cancellationDate != nil {
		return fmt.Errorf("subscription is already cancelled")
	}
	s.cancellationDate = &at
	s.touch()
	return nil
}

// SetCancellationDate sets or clears the cancellation date directly.
func (s *Subscription) SetCancellationDate(at *time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	s.cancellationDate = at
	s.touch()
	return nil
}

// SetPeriod replaces the current billing period boundaries.
func (s *Subscription) SetPeriod(start time.Time, end *time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	if end != nil && !end.After(start) {
		return fmt.Errorf("current period end must be after current period start")
	}
	s.currentPeriodStart = start
	s.currentPeriodEnd = end
	s.touch()
	return nil
}

// Renew rolls the subscription into a new billing period starting at start.
func (s *Subscription) Renew(start time.Time, end *time.Time) error {
	if s.isArchived {
		return fmt.Errorf("cannot renew an archived subscription")
	}
	if s.cancellationDate != nil {
		return fmt.Errorf("cannot renew a cancelled subscription")
	}
	if end != nil && !end.After(start) {
		return fmt.Errorf("current period end must be after current period start")
	}
	s.currentPeriodStart = start
	s.currentPeriodEnd = end
	s.trialEndDate = nil
	s.touch()
	return nil
}

// SetStripeSubscriptionID binds or clears the external payment-processor
// reference.
func (s *Subscription) SetStripeSubscriptionID(id *string) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	s.stripeSubscriptionID = id
	s.touch()
	return nil
}

// SetMetadata replaces the metadata map.
func (s *Subscription) SetMetadata(metadata map[string]interface{}) error {
	if s.isArchived {
		return fmt.Errorf("cannot modify an archived subscription")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	s.metadata = metadata
	s.touch()
	return nil
}

// Archive flips the archived flag without mutating any dates. An archived
// subscription accepts no further writes until unarchived.
func (s *Subscription) Archive() error {
	if s.isArchived {
		return nil
	}
	s.isArchived = true
	s.touch()
	return nil
}

// Unarchive restores an archived subscription.
func (s *Subscription) Unarchive() error {
	if !s.isArchived {
		return fmt.Errorf("subscription is not archived")
	}
	s.isArchived = false
	s.touch()
	return nil
}

// MarkTransitioned archives the subscription and stamps the transition time.
// The stripe subscription id stays behind with this record; the successor
// starts without an external binding.
func (s *Subscription) MarkTransitioned(at time.Time) error {
	if s.transitionedAt != nil {
		return fmt.Errorf("subscription has already been transitioned")
	}
	s.isArchived = true
	s.transitionedAt = &at
	s.touch()
	return nil
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now()
	s.version++
}
