package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// DefaultTransitionBatchSize caps one worker pass.
const DefaultTransitionBatchSize = 1000

type TransitionExpiredCommand struct {
	// BatchSize caps the number of candidates per pass; zero means the default.
	BatchSize int
}

// TransitionError records one failed subscription within a pass.
type TransitionError struct {
	SubscriptionKey string `json:"subscription_key"`
	Message         string `json:"message"`
}

// TransitionReport summarizes one worker pass.
type TransitionReport struct {
	Processed    int               `json:"processed"`
	Transitioned int               `json:"transitioned"`
	Archived     int               `json:"archived"`
	Errors       []TransitionError `json:"errors"`
}

// TransitionExpiredUseCase is the expired-subscription worker. It finds
// subscriptions that are expired, not archived, not cancelled, and whose plan
// has a transition billing cycle configured, then archives each one and opens
// a successor subscription on the configured cycle under a versioned key.
//
// Each subscription is processed independently; one failure never aborts the
// batch. The archive-then-create pair runs inside a transaction. If the
// process dies between the two steps the archived record drops out of the
// candidate set, so a rerun creates no spurious successor; the miss surfaces
// in the error report of the interrupted pass.
type TransitionExpiredUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         catalog.PlanRepository
	cycleRepo        catalog.BillingCycleRepository
	txManager        TransactionManager
	clock            clock.Clock
	logger           logger.Interface
}

func NewTransitionExpiredUseCase(
	subscriptionRepo subscription.Repository,
	planRepo catalog.PlanRepository,
	cycleRepo catalog.BillingCycleRepository,
	txManager TransactionManager,
	clock clock.Clock,
	logger logger.Interface,
) *TransitionExpiredUseCase {
	return &TransitionExpiredUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		cycleRepo:        cycleRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *TransitionExpiredUseCase) Execute(ctx context.Context, cmd TransitionExpiredCommand) (*TransitionReport, error) {
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultTransitionBatchSize
	}

	now := uc.clock.Now()
	report := &TransitionReport{Errors: []TransitionError{}}

	candidates, err := uc.subscriptionRepo.FindExpiredWithTransitionPlans(ctx, now, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}
	if len(candidates) == 0 {
		return report, nil
	}

	uc.logger.Infow("processing expired subscriptions", "count", len(candidates))

	for _, sub := range candidates {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("transition pass interrupted: %w", err)
		}

		report.Processed++
		if err := uc.transitionOne(ctx, sub); err != nil {
			uc.logger.Warnw("failed to transition subscription", "key", sub.Key(), "error", err)
			report.Errors = append(report.Errors, TransitionError{
				SubscriptionKey: sub.Key(),
				Message:         err.Error(),
			})
			continue
		}
		report.Transitioned++
		report.Archived++
	}

	uc.logger.Infow("transition pass finished",
		"processed", report.Processed,
		"transitioned", report.Transitioned,
		"errors", len(report.Errors),
	)
	return report, nil
}

func (uc *TransitionExpiredUseCase) transitionOne(ctx context.Context, sub *subscription.Subscription) error {
	// Reload the plan; the configured transition cycle may have been cleared
	// between the candidate query and now.
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("plan %d not found", sub.PlanID())
	}
	if plan.TransitionCycleID() == nil {
		return fmt.Errorf("plan %s no longer has a transition billing cycle", plan.Key())
	}

	target, err := uc.cycleRepo.GetByID(ctx, *plan.TransitionCycleID())
	if err != nil {
		return fmt.Errorf("failed to load transition billing cycle: %w", err)
	}
	if target == nil {
		return fmt.Errorf("transition billing cycle %d not found", *plan.TransitionCycleID())
	}

	successorKey := subscription.SuccessorKey(sub.Key())
	exists, err := uc.subscriptionRepo.ExistsByKey(ctx, successorKey)
	if err != nil {
		return fmt.Errorf("failed to check successor key: %w", err)
	}
	if exists {
		return fmt.Errorf("successor key %s already exists", successorKey)
	}

	now := uc.clock.Now()

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := sub.MarkTransitioned(now); err != nil {
			return fmt.Errorf("failed to mark subscription transitioned: %w", err)
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to archive subscription: %w", err)
		}

		// Successor: same customer, fresh period from now, no trial, no
		// cancellation, no stripe binding. The stripe id stays with the
		// archived record.
		successor, err := subscription.NewSubscription(
			successorKey,
			sub.CustomerID(),
			target.PlanID(),
			target.ID(),
			now,
			now,
			target.PeriodEnd(now),
		)
		if err != nil {
			return fmt.Errorf("failed to build successor subscription: %w", err)
		}
		if len(sub.Metadata()) > 0 {
			// Copy, never share: the archived record and its successor must
			// not alias the same metadata map.
			metadata := make(map[string]interface{}, len(sub.Metadata()))
			for k, v := range sub.Metadata() {
				metadata[k] = v
			}
			if err := successor.SetMetadata(metadata); err != nil {
				return fmt.Errorf("failed to copy metadata: %w", err)
			}
		}

		if err := uc.subscriptionRepo.Create(txCtx, successor); err != nil {
			return fmt.Errorf("failed to create successor subscription: %w", err)
		}

		uc.logger.Infow("subscription transitioned",
			"key", sub.Key(),
			"successor_key", successorKey,
			"target_cycle", target.Key(),
		)
		return nil
	})
}
