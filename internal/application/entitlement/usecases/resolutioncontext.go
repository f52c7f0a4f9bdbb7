package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/entitlement"
	"github.com/planwise-io/planwise/internal/domain/subscription"
)

// resolutionContext is the batched working set for feature resolution: a
// customer's resolvable subscriptions on one product, their plans, the plan
// feature values, and the subscription overrides. Loaded once per request so
// multi-feature resolution does no extra round-trips.
type resolutionContext struct {
	subs       []*subscription.Subscription
	planValues map[uint]map[uint]*catalog.PlanFeature
	overrides  map[uint]map[uint]*subscription.FeatureOverride
}

func loadResolutionContext(
	ctx context.Context,
	customerID, productID uint,
	now time.Time,
	subscriptionRepo subscription.Repository,
	planRepo catalog.PlanRepository,
	planFeatureRepo catalog.PlanFeatureRepository,
	overrideRepo subscription.OverrideRepository,
) (*resolutionContext, error) {
	all, err := subscriptionRepo.FindByCustomerID(ctx, customerID, nil, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer subscriptions: %w", err)
	}

	// Active, trial and cancellation-pending subscriptions resolve;
	// archived, expired, cancelled and pending ones never participate.
	resolvable := lo.Filter(all, func(s *subscription.Subscription, _ int) bool {
		return s.IsResolvable(now)
	})
	if len(resolvable) == 0 {
		return &resolutionContext{}, nil
	}

	planIDs := lo.Uniq(lo.Map(resolvable, func(s *subscription.Subscription, _ int) uint { return s.PlanID() }))
	plans, err := planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	plansByID := lo.KeyBy(plans, func(p *catalog.Plan) uint { return p.ID() })

	// A customer's subscriptions need not share a product; filter first.
	subs := lo.Filter(resolvable, func(s *subscription.Subscription, _ int) bool {
		plan, ok := plansByID[s.PlanID()]
		return ok && plan.ProductID() == productID
	})
	if len(subs) == 0 {
		return &resolutionContext{}, nil
	}

	// Tie-breaking depends on a stable iteration order: ascending internal id.
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID() < subs[j].ID() })

	keptPlanIDs := lo.Uniq(lo.Map(subs, func(s *subscription.Subscription, _ int) uint { return s.PlanID() }))
	planFeatures, err := planFeatureRepo.GetByPlanIDs(ctx, keptPlanIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan features: %w", err)
	}
	planValues := make(map[uint]map[uint]*catalog.PlanFeature, len(planFeatures))
	for planID, pfs := range planFeatures {
		planValues[planID] = lo.KeyBy(pfs, func(pf *catalog.PlanFeature) uint { return pf.FeatureID() })
	}

	subIDs := lo.Map(subs, func(s *subscription.Subscription, _ int) uint { return s.ID() })
	overridesBySub, err := overrideRepo.GetBySubscriptionIDs(ctx, subIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature overrides: %w", err)
	}
	overrides := make(map[uint]map[uint]*subscription.FeatureOverride, len(overridesBySub))
	for subID, ovs := range overridesBySub {
		overrides[subID] = lo.KeyBy(ovs, func(o *subscription.FeatureOverride) uint { return o.FeatureID() })
	}

	return &resolutionContext{
		subs:       subs,
		planValues: planValues,
		overrides:  overrides,
	}, nil
}

func (rc *resolutionContext) empty() bool {
	return len(rc.subs) == 0
}

// resolve runs the per-subscription hierarchy for one feature and picks the
// winner across subscriptions: the first override wins outright, otherwise
// the first non-empty resolved value.
func (rc *resolutionContext) resolve(feature *catalog.Feature) (entitlement.Resolution, bool) {
	candidates := make([]entitlement.Resolution, 0, len(rc.subs))
	for _, sub := range rc.subs {
		var planFeature *catalog.PlanFeature
		if values, ok := rc.planValues[sub.PlanID()]; ok {
			planFeature = values[feature.ID()]
		}
		var override *subscription.FeatureOverride
		if ovs, ok := rc.overrides[sub.ID()]; ok {
			override = ovs[feature.ID()]
		}
		candidates = append(candidates, entitlement.Resolve(feature, planFeature, override))
	}
	return entitlement.ResolveAcross(candidates)
}
