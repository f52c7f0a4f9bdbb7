package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	catalogvo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
)

func TestIsEnabledForCustomerUseCase_Execute(t *testing.T) {
	tests := []struct {
		name      string
		planValue string
		enabled   bool
	}{
		{name: "literal true", planValue: "true", enabled: true},
		{name: "uppercase true", planValue: "TRUE", enabled: true},
		{name: "mixed case true", planValue: "True", enabled: true},
		{name: "literal false", planValue: "false", enabled: false},
		{name: "numeric value is not truthy", planValue: "1", enabled: false},
		{name: "empty value", planValue: "", enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := fixtureTime.Add(24 * time.Hour)
			w := newResolutionWorld(t)
			w.feature = testFeature(t, 100, "max-projects", catalogvo.ValueTypeToggle, "false")
			w.withSubscriptions(testActiveSubscription(t, 1, "s1", 1, 20, 200))
			w.withPlanValues(map[uint][]*catalog.PlanFeature{
				20: {testPlanFeature(t, 1, 20, 100, tt.planValue)},
			})

			uc := NewIsEnabledForCustomerUseCase(w.useCase(now), &mockLogger{})
			enabled, err := uc.Execute(context.Background(), IsEnabledForCustomerQuery{
				CustomerKey: "acme-corp",
				ProductKey:  "projecthub",
				FeatureKey:  "max-projects",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.enabled, enabled)
		})
	}
}

func TestIsEnabledForCustomerUseCase_Execute_UnknownProductIsDisabled(t *testing.T) {
	w := newResolutionWorld(t)

	uc := NewIsEnabledForCustomerUseCase(w.useCase(fixtureTime), &mockLogger{})
	enabled, err := uc.Execute(context.Background(), IsEnabledForCustomerQuery{
		CustomerKey: "acme-corp",
		ProductKey:  "no-such-product",
		FeatureKey:  "max-projects",
	})

	require.NoError(t, err)
	assert.False(t, enabled)
}
