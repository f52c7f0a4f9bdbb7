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

type CreateSubscriptionCommand struct {
	Key                  string
	CustomerKey          string
	BillingCycleKey      string
	ActivationDate       *time.Time
	TrialEndDate         *time.Time
	ExpirationDate       *time.Time
	CancellationDate     *time.Time
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	StripeSubscriptionID *string
	Metadata             map[string]interface{}
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	customerRepo     customer.Repository
	planRepo         catalog.PlanRepository
	productRepo      catalog.ProductRepository
	cycleRepo        catalog.BillingCycleRepository
	clock            clock.Clock
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	customerRepo customer.Repository,
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	clock clock.Clock,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		productRepo:      productRepo,
		cycleRepo:        cycleRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid create subscription command", "error", err)
		return nil, err
	}

	cust, err := uc.customerRepo.GetByKey(ctx, cmd.CustomerKey)
	if err != nil {
		uc.logger.Errorw("failed to get customer", "error", err, "customer_key", cmd.CustomerKey)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		return nil, errors.NewNotFoundError("customer not found", cmd.CustomerKey)
	}

	cycle, err := uc.cycleRepo.GetByKey(ctx, cmd.BillingCycleKey)
	if err != nil {
		uc.logger.Errorw("failed to get billing cycle", "error", err, "billing_cycle_key", cmd.BillingCycleKey)
		return nil, fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return nil, errors.NewNotFoundError("billing cycle not found", cmd.BillingCycleKey)
	}

	plan, err := uc.planRepo.GetByID(ctx, cycle.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cycle.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found for billing cycle", cmd.BillingCycleKey)
	}

	product, err := uc.productRepo.GetByID(ctx, plan.ProductID())
	if err != nil {
		uc.logger.Errorw("failed to get product", "error", err, "product_id", plan.ProductID())
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found for plan", plan.Key())
	}

	exists, err := uc.subscriptionRepo.ExistsByKey(ctx, cmd.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription key: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("subscription key already exists", cmd.Key)
	}

	if cmd.StripeSubscriptionID != nil && *cmd.StripeSubscriptionID != "" {
		existing, err := uc.subscriptionRepo.GetByStripeSubscriptionID(ctx, *cmd.StripeSubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stripe subscription id: %w", err)
		}
		if existing != nil {
			return nil, errors.NewConflictError("stripe subscription id already in use", *cmd.StripeSubscriptionID)
		}
	}

	now := uc.clock.Now()

	periodStart := now
	if cmd.CurrentPeriodStart != nil {
		periodStart = *cmd.CurrentPeriodStart
	}
	periodEnd := cmd.CurrentPeriodEnd
	if periodEnd == nil {
		periodEnd = cycle.PeriodEnd(periodStart)
	}

	activation := now
	if cmd.ActivationDate != nil {
		activation = *cmd.ActivationDate
	}

	sub, err := subscription.NewSubscription(cmd.Key, cust.ID(), plan.ID(), cycle.ID(), activation, periodStart, periodEnd)
	if err != nil {
		return nil, errors.NewValidationError("invalid subscription", err.Error())
	}

	if cmd.TrialEndDate != nil {
		if err := sub.SetTrialEndDate(cmd.TrialEndDate); err != nil {
			return nil, errors.NewValidationError("invalid trial end date", err.Error())
		}
	}
	if cmd.ExpirationDate != nil {
		if err := sub.SetExpirationDate(cmd.ExpirationDate); err != nil {
			return nil, errors.NewValidationError("invalid expiration date", err.Error())
		}
	}
	if cmd.CancellationDate != nil {
		if err := sub.SetCancellationDate(cmd.CancellationDate); err != nil {
			return nil, errors.NewValidationError("invalid cancellation date", err.Error())
		}
	}
	if cmd.StripeSubscriptionID != nil && *cmd.StripeSubscriptionID != "" {
		if err := sub.SetStripeSubscriptionID(cmd.StripeSubscriptionID); err != nil {
			return nil, errors.NewValidationError("invalid stripe subscription id", err.Error())
		}
	}
	if cmd.Metadata != nil {
		if err := sub.SetMetadata(cmd.Metadata); err != nil {
			return nil, errors.NewValidationError("invalid metadata", err.Error())
		}
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("subscription key already exists", cmd.Key)
		}
		if ctxErr := errors.FromContextError(err); ctxErr != nil {
			return nil, ctxErr
		}
		uc.logger.Errorw("failed to create subscription", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.logger.Infow("subscription created",
		"key", sub.Key(),
		"customer_key", cust.Key(),
		"billing_cycle_key", cycle.Key(),
		"status", sub.Status(now).String(),
	)

	refs := dto.Refs{
		CustomerKey:     cust.Key(),
		ProductKey:      product.Key(),
		PlanKey:         plan.Key(),
		BillingCycleKey: cycle.Key(),
	}
	return dto.ToSubscriptionDTO(sub, refs, now), nil
}

func (uc *CreateSubscriptionUseCase) validateCommand(cmd CreateSubscriptionCommand) error {
	var fields []string
	if cmd.Key == "" {
		fields = append(fields, "key is required")
	}
	if cmd.CustomerKey == "" {
		fields = append(fields, "customer_key is required")
	}
	if cmd.BillingCycleKey == "" {
		fields = append(fields, "billing_cycle_key is required")
	}
	if len(fields) > 0 {
		return errors.NewValidationErrorWithFields("invalid create subscription command", fields)
	}
	return nil
}
