package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type mockProductRepository struct {
	CreateFunc                func(ctx context.Context, product *catalog.Product) error
	GetByIDFunc               func(ctx context.Context, id uint) (*catalog.Product, error)
	GetByKeyFunc              func(ctx context.Context, key string) (*catalog.Product, error)
	UpdateFunc                func(ctx context.Context, product *catalog.Product) error
	DeleteFunc                func(ctx context.Context, id uint) error
	ListFunc                  func(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error)
	AssociateFeatureFunc      func(ctx context.Context, productID, featureID uint) error
	DissociateFeatureFunc     func(ctx context.Context, productID, featureID uint) error
	GetAssociatedFeaturesFunc func(ctx context.Context, productID uint) ([]*catalog.Feature, error)
}

func (m *mockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*catalog.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProductRepository) GetByKey(ctx context.Context, key string) (*catalog.Product, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockProductRepository) AssociateFeature(ctx context.Context, productID, featureID uint) error {
	if m.AssociateFeatureFunc != nil {
		return m.AssociateFeatureFunc(ctx, productID, featureID)
	}
	return nil
}

func (m *mockProductRepository) DissociateFeature(ctx context.Context, productID, featureID uint) error {
	if m.DissociateFeatureFunc != nil {
		return m.DissociateFeatureFunc(ctx, productID, featureID)
	}
	return nil
}

func (m *mockProductRepository) GetAssociatedFeatures(ctx context.Context, productID uint) ([]*catalog.Feature, error) {
	if m.GetAssociatedFeaturesFunc != nil {
		return m.GetAssociatedFeaturesFunc(ctx, productID)
	}
	return nil, nil
}

type mockFeatureRepository struct {
	CreateFunc   func(ctx context.Context, feature *catalog.Feature) error
	GetByIDFunc  func(ctx context.Context, id uint) (*catalog.Feature, error)
	GetByKeyFunc func(ctx context.Context, key string) (*catalog.Feature, error)
	GetByIDsFunc func(ctx context.Context, ids []uint) ([]*catalog.Feature, error)
	UpdateFunc   func(ctx context.Context, feature *catalog.Feature) error
	DeleteFunc   func(ctx context.Context, id uint) error
	ListFunc     func(ctx context.Context, filter catalog.FeatureFilter) ([]*catalog.Feature, int64, error)
}

func (m *mockFeatureRepository) Create(ctx context.Context, feature *catalog.Feature) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, feature)
	}
	return nil
}

func (m *mockFeatureRepository) GetByID(ctx context.Context, id uint) (*catalog.Feature, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFeatureRepository) GetByKey(ctx context.Context, key string) (*catalog.Feature, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockFeatureRepository) GetByIDs(ctx context.Context, ids []uint) ([]*catalog.Feature, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockFeatureRepository) Update(ctx context.Context, feature *catalog.Feature) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, feature)
	}
	return nil
}

func (m *mockFeatureRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockFeatureRepository) List(ctx context.Context, filter catalog.FeatureFilter) ([]*catalog.Feature, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPlanRepository struct {
	CreateFunc         func(ctx context.Context, plan *catalog.Plan) error
	GetByIDFunc        func(ctx context.Context, id uint) (*catalog.Plan, error)
	GetByKeyFunc       func(ctx context.Context, key string) (*catalog.Plan, error)
	GetByIDsFunc       func(ctx context.Context, ids []uint) ([]*catalog.Plan, error)
	GetByProductIDFunc func(ctx context.Context, productID uint) ([]*catalog.Plan, error)
	UpdateFunc         func(ctx context.Context, plan *catalog.Plan) error
	DeleteFunc         func(ctx context.Context, id uint) error
	ListFunc           func(ctx context.Context, filter catalog.PlanFilter) ([]*catalog.Plan, int64, error)
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *catalog.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*catalog.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByKey(ctx context.Context, key string) (*catalog.Plan, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByIDs(ctx context.Context, ids []uint) ([]*catalog.Plan, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByProductID(ctx context.Context, productID uint) ([]*catalog.Plan, error) {
	if m.GetByProductIDFunc != nil {
		return m.GetByProductIDFunc(ctx, productID)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *catalog.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlanRepository) List(ctx context.Context, filter catalog.PlanFilter) ([]*catalog.Plan, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockBillingCycleRepository struct {
	CreateFunc      func(ctx context.Context, cycle *catalog.BillingCycle) error
	GetByIDFunc     func(ctx context.Context, id uint) (*catalog.BillingCycle, error)
	GetByKeyFunc    func(ctx context.Context, key string) (*catalog.BillingCycle, error)
	GetByPlanIDFunc func(ctx context.Context, planID uint) ([]*catalog.BillingCycle, error)
	UpdateFunc      func(ctx context.Context, cycle *catalog.BillingCycle) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockBillingCycleRepository) Create(ctx context.Context, cycle *catalog.BillingCycle) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cycle)
	}
	return nil
}

func (m *mockBillingCycleRepository) GetByID(ctx context.Context, id uint) (*catalog.BillingCycle, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBillingCycleRepository) GetByKey(ctx context.Context, key string) (*catalog.BillingCycle, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockBillingCycleRepository) GetByPlanID(ctx context.Context, planID uint) ([]*catalog.BillingCycle, error) {
	if m.GetByPlanIDFunc != nil {
		return m.GetByPlanIDFunc(ctx, planID)
	}
	return nil, nil
}

func (m *mockBillingCycleRepository) Update(ctx context.Context, cycle *catalog.BillingCycle) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cycle)
	}
	return nil
}

func (m *mockBillingCycleRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockPlanFeatureRepository struct {
	UpsertFunc              func(ctx context.Context, planFeature *catalog.PlanFeature) error
	GetByPlanIDFunc         func(ctx context.Context, planID uint) ([]*catalog.PlanFeature, error)
	GetByPlanIDsFunc        func(ctx context.Context, planIDs []uint) (map[uint][]*catalog.PlanFeature, error)
	GetByPlanAndFeatureFunc func(ctx context.Context, planID, featureID uint) (*catalog.PlanFeature, error)
	DeleteFunc              func(ctx context.Context, planID, featureID uint) error
	DeleteByPlanIDFunc      func(ctx context.Context, planID uint) error
}

func (m *mockPlanFeatureRepository) Upsert(ctx context.Context, planFeature *catalog.PlanFeature) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, planFeature)
	}
	return nil
}

func (m *mockPlanFeatureRepository) GetByPlanID(ctx context.Context, planID uint) ([]*catalog.PlanFeature, error) {
	if m.GetByPlanIDFunc != nil {
		return m.GetByPlanIDFunc(ctx, planID)
	}
	return nil, nil
}

func (m *mockPlanFeatureRepository) GetByPlanIDs(ctx context.Context, planIDs []uint) (map[uint][]*catalog.PlanFeature, error) {
	if m.GetByPlanIDsFunc != nil {
		return m.GetByPlanIDsFunc(ctx, planIDs)
	}
	return nil, nil
}

func (m *mockPlanFeatureRepository) GetByPlanAndFeature(ctx context.Context, planID, featureID uint) (*catalog.PlanFeature, error) {
	if m.GetByPlanAndFeatureFunc != nil {
		return m.GetByPlanAndFeatureFunc(ctx, planID, featureID)
	}
	return nil, nil
}

func (m *mockPlanFeatureRepository) Delete(ctx context.Context, planID, featureID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, planID, featureID)
	}
	return nil
}

func (m *mockPlanFeatureRepository) DeleteByPlanID(ctx context.Context, planID uint) error {
	if m.DeleteByPlanIDFunc != nil {
		return m.DeleteByPlanIDFunc(ctx, planID)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

var fixtureTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testProduct(t *testing.T, id uint, key string) *catalog.Product {
	t.Helper()
	product, err := catalog.ReconstructProduct(id, key, key, "", vo.StatusActive, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return product
}

func testFeature(t *testing.T, id uint, key string, valueType vo.FeatureValueType, defaultValue string) *catalog.Feature {
	t.Helper()
	feature, err := catalog.ReconstructFeature(id, key, key, "", valueType, defaultValue, nil, vo.StatusActive, nil, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return feature
}

func testPlan(t *testing.T, id, productID uint, key string) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(id, productID, key, key, "", vo.StatusActive, nil, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return plan
}

func testCycle(t *testing.T, id, planID uint, key string, durationValue *int, unit vo.DurationUnit) *catalog.BillingCycle {
	t.Helper()
	cycle, err := catalog.ReconstructBillingCycle(id, planID, key, key, "", vo.StatusActive, durationValue, unit, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return cycle
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
