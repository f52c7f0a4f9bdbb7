package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	catalogvo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/clock"
	"github.com/planwise-io/planwise/internal/shared/errors"
)

type createSubscriptionWorld struct {
	subscriptionRepo *mockSubscriptionRepository
	customerRepo     *mockCustomerRepository
	planRepo         *mockPlanRepository
	productRepo      *mockProductRepository
	cycleRepo        *mockBillingCycleRepository

	monthlyCycle *catalog.BillingCycle
	foreverCycle *catalog.BillingCycle

	created []*subscription.Subscription
}

func newCreateSubscriptionWorld(t *testing.T) *createSubscriptionWorld {
	cust := testCustomer(t, 7, "acme-corp")
	product := testProduct(t, 10, "projecthub")
	proPlan := testPlan(t, 20, 10, "pro", nil)
	freePlan := testPlan(t, 21, 10, "free-forever", nil)

	w := &createSubscriptionWorld{
		subscriptionRepo: &mockSubscriptionRepository{},
		customerRepo:     &mockCustomerRepository{},
		planRepo:         &mockPlanRepository{},
		productRepo:      &mockProductRepository{},
		cycleRepo:        &mockBillingCycleRepository{},

		monthlyCycle: testCycle(t, 200, 20, "monthly", intPtr(1), catalogvo.DurationMonths),
		foreverCycle: testCycle(t, 205, 21, "forever", nil, catalogvo.DurationForever),
	}

	w.customerRepo.GetByKeyFunc = func(ctx context.Context, key string) (*customer.Customer, error) {
		if key == cust.Key() {
			return cust, nil
		}
		return nil, nil
	}
	w.cycleRepo.GetByKeyFunc = func(ctx context.Context, key string) (*catalog.BillingCycle, error) {
		switch key {
		case "monthly":
			return w.monthlyCycle, nil
		case "forever":
			return w.foreverCycle, nil
		}
		return nil, nil
	}
	w.planRepo.GetByIDFunc = func(ctx context.Context, id uint) (*catalog.Plan, error) {
		switch id {
		case 20:
			return proPlan, nil
		case 21:
			return freePlan, nil
		}
		return nil, nil
	}
	w.productRepo.GetByIDFunc = func(ctx context.Context, id uint) (*catalog.Product, error) {
		if id == product.ID() {
			return product, nil
		}
		return nil, nil
	}
	w.subscriptionRepo.CreateFunc = func(ctx context.Context, sub *subscription.Subscription) error {
		w.created = append(w.created, sub)
		return nil
	}

	return w
}

func (w *createSubscriptionWorld) useCase(now time.Time) *CreateSubscriptionUseCase {
	return NewCreateSubscriptionUseCase(
		w.subscriptionRepo,
		w.customerRepo,
		w.planRepo,
		w.productRepo,
		w.cycleRepo,
		clock.NewFake(now),
		&mockLogger{},
	)
}

func TestCreateSubscriptionUseCase_Execute_MonthlyCycle(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(now).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "acme-corp",
		BillingCycleKey: "monthly",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "s1", result.Key)
	assert.Equal(t, "acme-corp", result.CustomerKey)
	assert.Equal(t, "projecthub", result.ProductKey)
	assert.Equal(t, "pro", result.PlanKey)
	assert.Equal(t, "monthly", result.BillingCycleKey)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, now, result.CurrentPeriodStart)
	require.NotNil(t, result.CurrentPeriodEnd)
	assert.Equal(t, now.AddDate(0, 1, 0), *result.CurrentPeriodEnd)

	require.Len(t, w.created, 1)
	assert.Equal(t, uint(7), w.created[0].CustomerID())
	assert.Equal(t, uint(20), w.created[0].PlanID())
	assert.Equal(t, uint(200), w.created[0].BillingCycleID())
}

func TestCreateSubscriptionUseCase_Execute_ForeverCycleHasNoPeriodEnd(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(now).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "acme-corp",
		BillingCycleKey: "forever",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "free-forever", result.PlanKey)
	assert.Nil(t, result.CurrentPeriodEnd)
	assert.Equal(t, "active", result.Status)
}

func TestCreateSubscriptionUseCase_Execute_TrialStatus(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	trialEnd := now.Add(14 * 24 * time.Hour)
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(now).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "acme-corp",
		BillingCycleKey: "monthly",
		TrialEndDate:    &trialEnd,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "trial", result.Status)
	require.NotNil(t, result.TrialEndDate)
	assert.Equal(t, trialEnd, *result.TrialEndDate)
}

func TestCreateSubscriptionUseCase_Execute_ExplicitPeriodIsKept(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	start := now.Add(-24 * time.Hour)
	end := now.Add(6 * 24 * time.Hour)
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(now).Execute(context.Background(), CreateSubscriptionCommand{
		Key:                "s1",
		CustomerKey:        "acme-corp",
		BillingCycleKey:    "monthly",
		CurrentPeriodStart: &start,
		CurrentPeriodEnd:   &end,
	})

	require.NoError(t, err)
	assert.Equal(t, start, result.CurrentPeriodStart)
	require.NotNil(t, result.CurrentPeriodEnd)
	assert.Equal(t, end, *result.CurrentPeriodEnd)
}

func TestCreateSubscriptionUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateSubscriptionCommand
	}{
		{name: "missing key", cmd: CreateSubscriptionCommand{CustomerKey: "acme-corp", BillingCycleKey: "monthly"}},
		{name: "missing customer key", cmd: CreateSubscriptionCommand{Key: "s1", BillingCycleKey: "monthly"}},
		{name: "missing billing cycle key", cmd: CreateSubscriptionCommand{Key: "s1", CustomerKey: "acme-corp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newCreateSubscriptionWorld(t)

			result, err := w.useCase(fixtureTime).Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestCreateSubscriptionUseCase_Execute_UnknownCustomer(t *testing.T) {
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(fixtureTime).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "no-such-customer",
		BillingCycleKey: "monthly",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCreateSubscriptionUseCase_Execute_UnknownBillingCycle(t *testing.T) {
	w := newCreateSubscriptionWorld(t)

	result, err := w.useCase(fixtureTime).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "acme-corp",
		BillingCycleKey: "no-such-cycle",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCreateSubscriptionUseCase_Execute_DuplicateKey(t *testing.T) {
	w := newCreateSubscriptionWorld(t)
	w.subscriptionRepo.ExistsByKeyFunc = func(ctx context.Context, key string) (bool, error) {
		return true, nil
	}

	result, err := w.useCase(fixtureTime).Execute(context.Background(), CreateSubscriptionCommand{
		Key:             "s1",
		CustomerKey:     "acme-corp",
		BillingCycleKey: "monthly",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, w.created)
}

func TestCreateSubscriptionUseCase_Execute_DuplicateStripeID(t *testing.T) {
	w := newCreateSubscriptionWorld(t)
	w.subscriptionRepo.GetByStripeSubscriptionIDFunc = func(ctx context.Context, stripeID string) (*subscription.Subscription, error) {
		return testActiveSubscription(t, 9, "other", 7, 20, 200), nil
	}

	result, err := w.useCase(fixtureTime).Execute(context.Background(), CreateSubscriptionCommand{
		Key:                  "s1",
		CustomerKey:          "acme-corp",
		BillingCycleKey:      "monthly",
		StripeSubscriptionID: strPtr("sub_123"),
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
}
