package usecases

import (
	"context"

	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// TransactionManager wraps a unit of work in a database transaction.
// Implemented by the shared db package; faked in tests.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EntitlementInvalidator busts cached entitlement values for a customer.
type EntitlementInvalidator interface {
	InvalidateCustomer(ctx context.Context, customerKey string) error
}

// entitlementInvalidation invalidates a customer's cached entitlement values
// after a mutation that changes resolution. Optional: a nil receiver or nil
// invalidator is a no-op, and failures only degrade cache freshness to the
// TTL, so they are logged and swallowed.
type entitlementInvalidation struct {
	customerRepo customer.Repository
	invalidator  EntitlementInvalidator
	logger       logger.Interface
}

func (e *entitlementInvalidation) run(ctx context.Context, customerID uint) {
	if e == nil || e.invalidator == nil {
		return
	}
	cust, err := e.customerRepo.GetByID(ctx, customerID)
	if err != nil || cust == nil {
		e.logger.Warnw("failed to load customer for cache invalidation", "customer_id", customerID, "error", err)
		return
	}
	if err := e.invalidator.InvalidateCustomer(ctx, cust.Key()); err != nil {
		e.logger.Warnw("failed to invalidate entitlement cache", "customer_key", cust.Key(), "error", err)
	}
}
