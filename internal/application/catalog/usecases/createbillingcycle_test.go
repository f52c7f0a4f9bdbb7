package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
)

type billingCycleWorld struct {
	cycleRepo *mockBillingCycleRepository
	planRepo  *mockPlanRepository

	plan    *catalog.Plan
	created *catalog.BillingCycle
}

func newBillingCycleWorld(t *testing.T) *billingCycleWorld {
	w := &billingCycleWorld{
		cycleRepo: &mockBillingCycleRepository{},
		planRepo:  &mockPlanRepository{},
		plan:      testPlan(t, 20, 10, "pro"),
	}

	w.planRepo.GetByKeyFunc = func(ctx context.Context, key string) (*catalog.Plan, error) {
		if key == w.plan.Key() {
			return w.plan, nil
		}
		return nil, nil
	}
	w.cycleRepo.CreateFunc = func(ctx context.Context, cycle *catalog.BillingCycle) error {
		w.created = cycle
		return nil
	}

	return w
}

func TestCreateBillingCycleUseCase_Execute_Monthly(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:       "pro",
		Key:           "pro-monthly",
		DisplayName:   "Pro Monthly",
		DurationValue: intPtr(1),
		DurationUnit:  "months",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "pro-monthly", result.Key)
	assert.Equal(t, "pro", result.PlanKey)
	assert.Equal(t, "months", result.DurationUnit)
	require.NotNil(t, result.DurationValue)
	assert.Equal(t, 1, *result.DurationValue)

	require.NotNil(t, w.created)
	assert.Equal(t, uint(20), w.created.PlanID())
}

func TestCreateBillingCycleUseCase_Execute_Forever(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:      "pro",
		Key:          "pro-forever",
		DisplayName:  "Pro Forever",
		DurationUnit: "forever",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.DurationValue)
	assert.Equal(t, "forever", result.DurationUnit)
}

func TestCreateBillingCycleUseCase_Execute_ForeverWithValueIsRejected(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:       "pro",
		Key:           "pro-forever",
		DisplayName:   "Pro Forever",
		DurationValue: intPtr(12),
		DurationUnit:  "forever",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	assert.Nil(t, w.created)
}

func TestCreateBillingCycleUseCase_Execute_FiniteUnitRequiresValue(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:      "pro",
		Key:          "pro-monthly",
		DisplayName:  "Pro Monthly",
		DurationUnit: "months",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateBillingCycleUseCase_Execute_InvalidUnit(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:       "pro",
		Key:           "pro-fortnightly",
		DisplayName:   "Pro Fortnightly",
		DurationValue: intPtr(2),
		DurationUnit:  "fortnights",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateBillingCycleUseCase_Execute_UnknownPlan(t *testing.T) {
	w := newBillingCycleWorld(t)
	uc := NewCreateBillingCycleUseCase(w.cycleRepo, w.planRepo, &mockLogger{})

	result, err := uc.Execute(context.Background(), CreateBillingCycleCommand{
		PlanKey:       "no-such-plan",
		Key:           "pro-monthly",
		DisplayName:   "Pro Monthly",
		DurationValue: intPtr(1),
		DurationUnit:  "months",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}
