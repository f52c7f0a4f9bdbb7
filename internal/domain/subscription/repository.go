package subscription

import (
	"context"
	"time"

	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByKey(ctx context.Context, key string) (*Subscription, error)
	GetByStripeSubscriptionID(ctx context.Context, stripeID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter Filter) ([]*Subscription, int64, error)

	// FindByCustomerID returns a customer's subscriptions, optionally
	// restricted to those whose derived status at now matches status.
	FindByCustomerID(ctx context.Context, customerID uint, status *vo.SubscriptionStatus, now time.Time) ([]*Subscription, error)

	// FindExpiredWithTransitionPlans returns up to limit subscriptions that
	// are not archived, not cancelled, expired at now, and whose plan has a
	// transition billing cycle configured. The plan join runs in the store.
	FindExpiredWithTransitionPlans(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)

	ExistsByKey(ctx context.Context, key string) (bool, error)
	CountByPlanID(ctx context.Context, planID uint) (int64, error)
	CountByBillingCycleID(ctx context.Context, billingCycleID uint) (int64, error)
}

// Filter selects subscriptions by resolved internal ids. Key-to-id resolution
// happens in the application layer before the store is consulted.
type Filter struct {
	CustomerID     *uint
	PlanID         *uint
	ProductID      *uint
	BillingCycleID *uint
	// Status filters on derived status; Now anchors the derivation.
	Status          *vo.SubscriptionStatus
	Now             time.Time
	IncludeArchived bool
	query.BaseFilter
}

type OverrideRepository interface {
	// Upsert inserts the override or overwrites an existing one for the same
	// (subscription, feature) pair.
	Upsert(ctx context.Context, override *FeatureOverride) error
	GetBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*FeatureOverride, error)
	GetBySubscriptionIDs(ctx context.Context, subscriptionIDs []uint) (map[uint][]*FeatureOverride, error)
	GetBySubscriptionAndFeature(ctx context.Context, subscriptionID, featureID uint) (*FeatureOverride, error)
	Delete(ctx context.Context, subscriptionID, featureID uint) error
	DeleteTemporaryBySubscriptionID(ctx context.Context, subscriptionID uint) error
	DeleteBySubscriptionID(ctx context.Context, subscriptionID uint) error
}
