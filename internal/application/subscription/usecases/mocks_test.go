package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	catalogvo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	subvo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	CreateFunc                         func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc                        func(ctx context.Context, id uint) (*subscription.Subscription, error)
	GetByKeyFunc                       func(ctx context.Context, key string) (*subscription.Subscription, error)
	GetByStripeSubscriptionIDFunc      func(ctx context.Context, stripeID string) (*subscription.Subscription, error)
	UpdateFunc                         func(ctx context.Context, sub *subscription.Subscription) error
	DeleteFunc                         func(ctx context.Context, id uint) error
	ListFunc                           func(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error)
	FindByCustomerIDFunc               func(ctx context.Context, customerID uint, status *subvo.SubscriptionStatus, now time.Time) ([]*subscription.Subscription, error)
	FindExpiredWithTransitionPlansFunc func(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error)
	ExistsByKeyFunc                    func(ctx context.Context, key string) (bool, error)
	CountByPlanIDFunc                  func(ctx context.Context, planID uint) (int64, error)
	CountByBillingCycleIDFunc          func(ctx context.Context, billingCycleID uint) (int64, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByKey(ctx context.Context, key string) (*subscription.Subscription, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeID string) (*subscription.Subscription, error) {
	if m.GetByStripeSubscriptionIDFunc != nil {
		return m.GetByStripeSubscriptionIDFunc(ctx, stripeID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSubscriptionRepository) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSubscriptionRepository) FindByCustomerID(ctx context.Context, customerID uint, status *subvo.SubscriptionStatus, now time.Time) ([]*subscription.Subscription, error) {
	if m.FindByCustomerIDFunc != nil {
		return m.FindByCustomerIDFunc(ctx, customerID, status, now)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindExpiredWithTransitionPlans(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	if m.FindExpiredWithTransitionPlansFunc != nil {
		return m.FindExpiredWithTransitionPlansFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	if m.ExistsByKeyFunc != nil {
		return m.ExistsByKeyFunc(ctx, key)
	}
	return false, nil
}

func (m *mockSubscriptionRepository) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	if m.CountByPlanIDFunc != nil {
		return m.CountByPlanIDFunc(ctx, planID)
	}
	return 0, nil
}

func (m *mockSubscriptionRepository) CountByBillingCycleID(ctx context.Context, billingCycleID uint) (int64, error) {
	if m.CountByBillingCycleIDFunc != nil {
		return m.CountByBillingCycleIDFunc(ctx, billingCycleID)
	}
	return 0, nil
}

type mockOverrideRepository struct {
	UpsertFunc                          func(ctx context.Context, override *subscription.FeatureOverride) error
	GetBySubscriptionIDFunc             func(ctx context.Context, subscriptionID uint) ([]*subscription.FeatureOverride, error)
	GetBySubscriptionIDsFunc            func(ctx context.Context, subscriptionIDs []uint) (map[uint][]*subscription.FeatureOverride, error)
	GetBySubscriptionAndFeatureFunc     func(ctx context.Context, subscriptionID, featureID uint) (*subscription.FeatureOverride, error)
	DeleteFunc                          func(ctx context.Context, subscriptionID, featureID uint) error
	DeleteTemporaryBySubscriptionIDFunc func(ctx context.Context, subscriptionID uint) error
	DeleteBySubscriptionIDFunc          func(ctx context.Context, subscriptionID uint) error
}

func (m *mockOverrideRepository) Upsert(ctx context.Context, override *subscription.FeatureOverride) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, override)
	}
	return nil
}

func (m *mockOverrideRepository) GetBySubscriptionID(ctx context.Context, subscriptionID uint) ([]*subscription.FeatureOverride, error) {
	if m.GetBySubscriptionIDFunc != nil {
		return m.GetBySubscriptionIDFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockOverrideRepository) GetBySubscriptionIDs(ctx context.Context, subscriptionIDs []uint) (map[uint][]*subscription.FeatureOverride, error) {
	if m.GetBySubscriptionIDsFunc != nil {
		return m.GetBySubscriptionIDsFunc(ctx, subscriptionIDs)
	}
	return nil, nil
}

func (m *mockOverrideRepository) GetBySubscriptionAndFeature(ctx context.Context, subscriptionID, featureID uint) (*subscription.FeatureOverride, error) {
	if m.GetBySubscriptionAndFeatureFunc != nil {
		return m.GetBySubscriptionAndFeatureFunc(ctx, subscriptionID, featureID)
	}
	return nil, nil
}

func (m *mockOverrideRepository) Delete(ctx context.Context, subscriptionID, featureID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, subscriptionID, featureID)
	}
	return nil
}

func (m *mockOverrideRepository) DeleteTemporaryBySubscriptionID(ctx context.Context, subscriptionID uint) error {
	if m.DeleteTemporaryBySubscriptionIDFunc != nil {
		return m.DeleteTemporaryBySubscriptionIDFunc(ctx, subscriptionID)
	}
	return nil
}

func (m *mockOverrideRepository) DeleteBySubscriptionID(ctx context.Context, subscriptionID uint) error {
	if m.DeleteBySubscriptionIDFunc != nil {
		return m.DeleteBySubscriptionIDFunc(ctx, subscriptionID)
	}
	return nil
}

type mockCustomerRepository struct {
	CreateFunc   func(ctx context.Context, cust *customer.Customer) error
	GetByIDFunc  func(ctx context.Context, id uint) (*customer.Customer, error)
	GetByKeyFunc func(ctx context.Context, key string) (*customer.Customer, error)
	UpdateFunc   func(ctx context.Context, cust *customer.Customer) error
	DeleteFunc   func(ctx context.Context, id uint) error
	ListFunc     func(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error)
}

func (m *mockCustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cust)
	}
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByKey(ctx context.Context, key string) (*customer.Customer, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cust)
	}
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCustomerRepository) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

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

// fakeTxManager runs the unit of work inline, no transaction semantics.
type fakeTxManager struct {
	Calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls++
	return fn(ctx)
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

func testCustomer(t *testing.T, id uint, key string) *customer.Customer {
	t.Helper()
	cust, err := customer.ReconstructCustomer(id, key, key, nil, catalogvo.StatusActive, nil, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return cust
}

func testProduct(t *testing.T, id uint, key string) *catalog.Product {
	t.Helper()
	product, err := catalog.ReconstructProduct(id, key, key, "", catalogvo.StatusActive, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return product
}

func testFeature(t *testing.T, id uint, key string, valueType catalogvo.FeatureValueType, defaultValue string) *catalog.Feature {
	t.Helper()
	feature, err := catalog.ReconstructFeature(id, key, key, "", valueType, defaultValue, nil, catalogvo.StatusActive, nil, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return feature
}

func testPlan(t *testing.T, id, productID uint, key string, transitionCycleID *uint) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(id, productID, key, key, "", catalogvo.StatusActive, transitionCycleID, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return plan
}

func testCycle(t *testing.T, id, planID uint, key string, durationValue *int, unit catalogvo.DurationUnit) *catalog.BillingCycle {
	t.Helper()
	cycle, err := catalog.ReconstructBillingCycle(id, planID, key, key, "", catalogvo.StatusActive, durationValue, unit, nil, 1, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return cycle
}

// testExpiredSubscription builds a subscription whose expiration date has
// passed relative to any instant after fixtureTime+1h.
func testExpiredSubscription(t *testing.T, id uint, key string, customerID, planID, cycleID uint) *subscription.Subscription {
	t.Helper()
	expiration := fixtureTime.Add(time.Hour)
	sub, err := subscription.ReconstructSubscription(
		id, key, customerID, planID, cycleID,
		fixtureTime, nil, &expiration, nil,
		fixtureTime, nil,
		nil, false, nil, nil, 1, fixtureTime, fixtureTime,
	)
	require.NoError(t, err)
	return sub
}

func testActiveSubscription(t *testing.T, id uint, key string, customerID, planID, cycleID uint) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.ReconstructSubscription(
		id, key, customerID, planID, cycleID,
		fixtureTime, nil, nil, nil,
		fixtureTime, nil,
		nil, false, nil, nil, 1, fixtureTime, fixtureTime,
	)
	require.NoError(t, err)
	return sub
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
