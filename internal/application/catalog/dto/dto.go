package dto

import (
	"time"

	"github.com/planwise-io/planwise/internal/domain/catalog"
)

type ProductDTO struct {
	Key         string                 `json:"key"`
	DisplayName string                 `json:"display_name"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type FeatureDTO struct {
	Key          string                 `json:"key"`
	DisplayName  string                 `json:"display_name"`
	Description  string                 `json:"description"`
	ValueType    string                 `json:"value_type"`
	DefaultValue string                 `json:"default_value"`
	GroupName    *string                `json:"group_name,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

type PlanDTO struct {
	Key                string                 `json:"key"`
	ProductKey         string                 `json:"product_key"`
	DisplayName        string                 `json:"display_name"`
	Description        string                 `json:"description"`
	Status             string                 `json:"status"`
	TransitionCycleKey *string                `json:"on_expire_transition_to_billing_cycle_key,omitempty"`
	Metadata           map[string]interface{} `json:"metadata"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type BillingCycleDTO struct {
	Key               string    `json:"key"`
	PlanKey           string    `json:"plan_key"`
	DisplayName       string    `json:"display_name"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	DurationValue     *int      `json:"duration_value,omitempty"`
	DurationUnit      string    `json:"duration_unit"`
	ExternalProductID *string   `json:"external_product_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PlanFeatureDTO struct {
	PlanKey    string `json:"plan_key"`
	FeatureKey string `json:"feature_key"`
	Value      string `json:"value"`
}

func ToProductDTO(product *catalog.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		Key:         product.Key(),
		DisplayName: product.DisplayName(),
		Description: product.Description(),
		Status:      product.Status().String(),
		Metadata:    product.Metadata(),
		CreatedAt:   product.CreatedAt(),
		UpdatedAt:   product.UpdatedAt(),
	}
}

func ToFeatureDTO(feature *catalog.Feature) *FeatureDTO {
	if feature == nil {
		return nil
	}
	return &FeatureDTO{
		Key:          feature.Key(),
		DisplayName:  feature.DisplayName(),
		Description:  feature.Description(),
		ValueType:    feature.ValueType().String(),
		DefaultValue: feature.DefaultValue(),
		GroupName:    feature.GroupName(),
		Status:       feature.Status().String(),
		Metadata:     feature.Metadata(),
		CreatedAt:    feature.CreatedAt(),
		UpdatedAt:    feature.UpdatedAt(),
	}
}

// ToPlanDTO converts a plan; productKey and transitionCycleKey are resolved
// by the caller.
func ToPlanDTO(plan *catalog.Plan, productKey string, transitionCycleKey *string) *PlanDTO {
	if plan == nil {
		return nil
	}
	return &PlanDTO{
		Key:                plan.Key(),
		ProductKey:         productKey,
		DisplayName:        plan.DisplayName(),
		Description:        plan.Description(),
		Status:             plan.Status().String(),
		TransitionCycleKey: transitionCycleKey,
		Metadata:           plan.Metadata(),
		CreatedAt:          plan.CreatedAt(),
		UpdatedAt:          plan.UpdatedAt(),
	}
}

func ToBillingCycleDTO(cycle *catalog.BillingCycle, planKey string) *BillingCycleDTO {
	if cycle == nil {
		return nil
	}
	return &BillingCycleDTO{
		Key:               cycle.Key(),
		PlanKey:           planKey,
		DisplayName:       cycle.DisplayName(),
		Description:       cycle.Description(),
		Status:            cycle.Status().String(),
		DurationValue:     cycle.DurationValue(),
		DurationUnit:      cycle.DurationUnit().String(),
		ExternalProductID: cycle.ExternalProductID(),
		CreatedAt:         cycle.CreatedAt(),
		UpdatedAt:         cycle.UpdatedAt(),
	}
}

func ToPlanFeatureDTO(pf *catalog.PlanFeature, planKey, featureKey string) *PlanFeatureDTO {
	if pf == nil {
		return nil
	}
	return &PlanFeatureDTO{
		PlanKey:    planKey,
		FeatureKey: featureKey,
		Value:      pf.Value(),
	}
}
