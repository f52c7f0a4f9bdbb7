package catalog

import (
	"context"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByKey(ctx context.Context, key string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// AssociateFeature links a feature to a product (the product "offers" the
	// feature). Idempotent: re-associating an existing pair is a no-op.
	AssociateFeature(ctx context.Context, productID, featureID uint) error
	DissociateFeature(ctx context.Context, productID, featureID uint) error
	GetAssociatedFeatures(ctx context.Context, productID uint) ([]*Feature, error)
}

type ProductFilter struct {
	Status *vo.EntityStatus
	query.BaseFilter
}

type FeatureRepository interface {
	Create(ctx context.Context, feature *Feature) error
	GetByID(ctx context.Context, id uint) (*Feature, error)
	GetByKey(ctx context.Context, key string) (*Feature, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Feature, error)
	Update(ctx context.Context, feature *Feature) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter FeatureFilter) ([]*Feature, int64, error)
}

type FeatureFilter struct {
	Status    *vo.EntityStatus
	GroupName *string
	query.BaseFilter
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	// GetByKey looks a plan up by key alone; plan keys are globally unique.
	GetByKey(ctx context.Context, key string) (*Plan, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Plan, error)
	GetByProductID(ctx context.Context, productID uint) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PlanFilter) ([]*Plan, int64, error)
}

type PlanFilter struct {
	ProductID *uint
	Status    *vo.EntityStatus
	query.BaseFilter
}

type BillingCycleRepository interface {
	Create(ctx context.Context, cycle *BillingCycle) error
	GetByID(ctx context.Context, id uint) (*BillingCycle, error)
	// GetByKey looks a billing cycle up by key alone; cycle keys are globally unique.
	GetByKey(ctx context.Context, key string) (*BillingCycle, error)
	GetByPlanID(ctx context.Context, planID uint) ([]*BillingCycle, error)
	Update(ctx context.Context, cycle *BillingCycle) error
	Delete(ctx context.Context, id uint) error
}

type PlanFeatureRepository interface {
	// Upsert inserts the plan-feature value or overwrites an existing
	// assignment for the same (plan, feature) pair.
	Upsert(ctx context.Context, planFeature *PlanFeature) error
	GetByPlanID(ctx context.Context, planID uint) ([]*PlanFeature, error)
	GetByPlanIDs(ctx context.Context, planIDs []uint) (map[uint][]*PlanFeature, error)
	GetByPlanAndFeature(ctx context.Context, planID, featureID uint) (*PlanFeature, error)
	Delete(ctx context.Context, planID, featureID uint) error
	DeleteByPlanID(ctx context.Context, planID uint) error
}
