package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/planwise-io/planwise/internal/application/subscription/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// UpdateSubscriptionCommand carries the writable fields. Pointer-to-pointer
// fields distinguish "leave unchanged" (outer nil) from "clear" (inner nil);
// clearing the trial end date is how trial conversion is expressed.
type UpdateSubscriptionCommand struct {
	Key                string
	BillingCycleKey    *string
	TrialEndDate       **time.Time
	ExpirationDate     **time.Time
	CancellationDate   **time.Time
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   **time.Time
	Metadata           map[string]interface{}
}

type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	customerRepo     customer.Repository
	planRepo         catalog.PlanRepository
	productRepo      catalog.ProductRepository
	cycleRepo        catalog.BillingCycleRepository
	invalidation     *entitlementInvalidation
	clock            clock.Clock
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	customerRepo customer.Repository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	clock clock.Clock,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		productRepo:      productRepo,
		cycleRepo:        cycleRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if cmd.Key == "" {
		return nil, errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found", cmd.Key)
	}
	if sub.IsArchived() {
		return nil, errors.NewDomainError("cannot update an archived subscription", cmd.Key)
	}

	// Changing the billing cycle also repoints the plan; this is how upgrades
	// and downgrades are expressed.
	if cmd.BillingCycleKey != nil {
		cycle, err := uc.cycleRepo.GetByKey(ctx, *cmd.BillingCycleKey)
		if err != nil {
			return nil, fmt.Errorf("failed to get billing cycle: %w", err)
		}
		if cycle == nil {
			return nil, errors.NewNotFoundError("billing cycle not found", *cmd.BillingCycleKey)
		}
		if err := sub.ChangeBillingCycle(cycle.ID(), cycle.PlanID()); err != nil {
			return nil, errors.NewDomainError("cannot change billing cycle", err.Error())
		}
	}

	if cmd.TrialEndDate != nil {
		if err := sub.SetTrialEndDate(*cmd.TrialEndDate); err != nil {
			return nil, errors.NewDomainError("cannot update trial end date", err.Error())
		}
	}
	if cmd.ExpirationDate != nil {
		if err := sub.SetExpirationDate(*cmd.ExpirationDate); err != nil {
			return nil, errors.NewDomainError("cannot update expiration date", err.Error())
		}
	}
	if cmd.CancellationDate != nil {
		if err := sub.SetCancellationDate(*cmd.CancellationDate); err != nil {
			return nil, errors.NewDomainError("cannot update cancellation date", err.Error())
		}
	}
	if cmd.CurrentPeriodStart != nil || cmd.CurrentPeriodEnd != nil {
		start := sub.CurrentPeriodStart()
		if cmd.CurrentPeriodStart != nil {
			start = *cmd.CurrentPeriodStart
		}
		end := sub.CurrentPeriodEnd()
		if cmd.CurrentPeriodEnd != nil {
			end = *cmd.CurrentPeriodEnd
		}
		if err := sub.SetPeriod(start, end); err != nil {
			return nil, errors.NewValidationError("invalid billing period", err.Error())
		}
	}
	if cmd.Metadata != nil {
		if err := sub.SetMetadata(cmd.Metadata); err != nil {
			return nil, errors.NewDomainError("cannot update metadata", err.Error())
		}
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		if ctxErr := errors.FromContextError(err); ctxErr != nil {
			return nil, ctxErr
		}
		uc.logger.Errorw("failed to update subscription", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.invalidation.run(ctx, sub.CustomerID())

	refs, err := resolveRefs(ctx, sub, uc.customerRepo, uc.planRepo, uc.productRepo, uc.cycleRepo)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	uc.logger.Infow("subscription updated", "key", sub.Key(), "status", sub.Status(now).String())
	return dto.ToSubscriptionDTO(sub, refs, now), nil
}

// SetInvalidation enables entitlement cache busting after subscription updates.
// A billing cycle change re-points the plan, which changes resolution
// immediately for the customer.
func (uc *UpdateSubscriptionUseCase) SetInvalidation(invalidator EntitlementInvalidator) {
	uc.invalidation = &entitlementInvalidation{customerRepo: uc.customerRepo, invalidator: invalidator, logger: uc.logger}
}
