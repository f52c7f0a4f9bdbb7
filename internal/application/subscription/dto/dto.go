package dto

import (
	"time"

	"github.com/planwise-io/planwise/internal/domain/subscription"
)

// SubscriptionDTO is the external view of a subscription. References surface
// as string keys; internal ids never leave the application layer. Status is
// derived at conversion time.
type SubscriptionDTO struct {
	Key                  string                 `json:"key"`
	CustomerKey          string                 `json:"customer_key"`
	ProductKey           string                 `json:"product_key"`
	PlanKey              string                 `json:"plan_key"`
	BillingCycleKey      string                 `json:"billing_cycle_key"`
	Status               string                 `json:"status"`
	ActivationDate       time.Time              `json:"activation_date"`
	TrialEndDate         *time.Time             `json:"trial_end_date,omitempty"`
	ExpirationDate       *time.Time             `json:"expiration_date,omitempty"`
	CancellationDate     *time.Time             `json:"cancellation_date,omitempty"`
	CurrentPeriodStart   time.Time              `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time             `json:"current_period_end,omitempty"`
	StripeSubscriptionID *string                `json:"stripe_subscription_id,omitempty"`
	IsArchived           bool                   `json:"is_archived"`
	TransitionedAt       *time.Time             `json:"transitioned_at,omitempty"`
	Metadata             map[string]interface{} `json:"metadata"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// Refs carries the resolved keys of a subscription's reference chain.
type Refs struct {
	CustomerKey     string
	ProductKey      string
	PlanKey         string
	BillingCycleKey string
}

type FeatureOverrideDTO struct {
	SubscriptionKey string    `json:"subscription_key"`
	FeatureKey      string    `json:"feature_key"`
	Value           string    `json:"value"`
	OverrideType    string    `json:"override_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToSubscriptionDTO converts a subscription aggregate to its external view.
func ToSubscriptionDTO(sub *subscription.Subscription, refs Refs, now time.Time) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	return &SubscriptionDTO{
		Key:                  sub.Key(),
		CustomerKey:          refs.CustomerKey,
		ProductKey:           refs.ProductKey,
		PlanKey:              refs.PlanKey,
		BillingCycleKey:      refs.BillingCycleKey,
		Status:               sub.Status(now).String(),
		ActivationDate:       sub.ActivationDate(),
		TrialEndDate:         sub.TrialEndDate(),
		ExpirationDate:       sub.ExpirationDate(),
		CancellationDate:     sub.CancellationDate(),
		CurrentPeriodStart:   sub.CurrentPeriodStart(),
		CurrentPeriodEnd:     sub.CurrentPeriodEnd(),
		StripeSubscriptionID: sub.StripeSubscriptionID(),
		IsArchived:           sub.IsArchived(),
		TransitionedAt:       sub.TransitionedAt(),
		Metadata:             sub.Metadata(),
		CreatedAt:            sub.CreatedAt(),
		UpdatedAt:            sub.UpdatedAt(),
	}
}

// ToFeatureOverrideDTO converts an override with its resolved keys.
func ToFeatureOverrideDTO(override *subscription.FeatureOverride, subscriptionKey, featureKey string) *FeatureOverrideDTO {
	if override == nil {
		return nil
	}

	return &FeatureOverrideDTO{
		SubscriptionKey: subscriptionKey,
		FeatureKey:      featureKey,
		Value:           override.Value(),
		OverrideType:    override.OverrideType().String(),
		CreatedAt:       override.CreatedAt(),
		UpdatedAt:       override.UpdatedAt(),
	}
}
