package entitlement

import (
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
)

// Source names the hierarchy level a resolved value came from.
type Source string

const (
	SourceOverride Source = "override"
	SourcePlan     Source = "plan"
	SourceDefault  Source = "default"
)

// Resolution is the effective value of one feature for one subscription.
type Resolution struct {
	Value  string
	Source Source
}

// Resolve applies the three-level hierarchy for a single subscription:
// subscription override, then plan-feature value, then the feature default.
// planFeature and override may be nil when the level has no entry. Pure and
// total; carries no I/O and no time dependency.
func Resolve(feature *catalog.Feature, planFeature *catalog.PlanFeature, override *subscription.FeatureOverride) Resolution {
	if override != nil {
		return Resolution{Value: override.Value(), Source: SourceOverride}
	}
	if planFeature != nil {
		return Resolution{Value: planFeature.Value(), Source: SourcePlan}
	}
	return Resolution{Value: feature.DefaultValue(), Source: SourceDefault}
}

// ResolveAcross chooses among several candidate resolutions, one per
// subscription, presented in stable ascending-id order. The first resolution
// backed by an override wins outright; otherwise the first non-empty value is
// kept. Overrides express intentional per-customer decisions and must not be
// shadowed by another concurrent subscription's plan value.
func ResolveAcross(candidates []Resolution) (Resolution, bool) {
	var picked Resolution
	found := false
	for _, c := range candidates {
		if c.Source == SourceOverride {
			return c, true
		}
		if !found && c.Value != "" {
			picked = c
			found = true
		}
	}
	return picked, found
}
