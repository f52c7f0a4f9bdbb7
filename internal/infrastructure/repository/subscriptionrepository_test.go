package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	catalogvo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, args ...any)                   {}
func (l *noopLogger) Info(msg string, args ...any)                    {}
func (l *noopLogger) Warn(msg string, args ...any)                    {}
func (l *noopLogger) Error(msg string, args ...any)                   {}
func (l *noopLogger) With(args ...any) logger.Interface               { return l }
func (l *noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProductModel{},
		&models.ProductFeatureModel{},
		&models.FeatureModel{},
		&models.PlanModel{},
		&models.PlanFeatureModel{},
		&models.BillingCycleModel{},
		&models.CustomerModel{},
		&models.SubscriptionModel{},
		&models.FeatureOverrideModel{},
	)
	require.NoError(t, err)

	return db
}

func newSubscription(t *testing.T, key string, customerID, planID, cycleID uint, mutate func(*subscription.Subscription)) *subscription.Subscription {
	t.Helper()
	start := baseTime.AddDate(0, -1, 0)
	end := baseTime.AddDate(0, 1, 0)
	sub, err := subscription.NewSubscription(key, customerID, planID, cycleID, start, start, &end)
	require.NoError(t, err)
	if mutate != nil {
		mutate(sub)
	}
	return sub
}

func TestSubscriptionRepository_CreateAndGetByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	stripeID := "sub_stripe_123"
	sub := newSubscription(t, "acme-sub", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetStripeSubscriptionID(&stripeID))
		require.NoError(t, s.SetMetadata(map[string]interface{}{"source": "signup"}))
	})

	require.NoError(t, repo.Create(ctx, sub))
	assert.NotZero(t, sub.ID())

	found, err := repo.GetByKey(ctx, "acme-sub")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sub.ID(), found.ID())
	assert.Equal(t, uint(1), found.CustomerID())
	assert.Equal(t, uint(20), found.PlanID())
	assert.Equal(t, uint(200), found.BillingCycleID())
	require.NotNil(t, found.StripeSubscriptionID())
	assert.Equal(t, stripeID, *found.StripeSubscriptionID())
	assert.Equal(t, "signup", found.Metadata()["source"])
	assert.False(t, found.IsArchived())

	missing, err := repo.GetByKey(ctx, "no-such-sub")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubscriptionRepository_GetByStripeSubscriptionID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	stripeID := "sub_stripe_456"
	sub := newSubscription(t, "acme-sub", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetStripeSubscriptionID(&stripeID))
	})
	require.NoError(t, repo.Create(ctx, sub))

	found, err := repo.GetByStripeSubscriptionID(ctx, stripeID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "acme-sub", found.Key())

	missing, err := repo.GetByStripeSubscriptionID(ctx, "sub_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	sub := newSubscription(t, "acme-sub", 1, 20, 200, nil)
	require.NoError(t, repo.Create(ctx, sub))

	require.NoError(t, sub.Cancel(baseTime))
	require.NoError(t, repo.Update(ctx, sub))

	found, err := repo.GetByID(ctx, sub.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.CancellationDate())
	assert.True(t, found.CancellationDate().Equal(baseTime))
}

// seedStatusFixtures creates one subscription per derived status for the
// same customer and returns the expected key for each status.
func seedStatusFixtures(t *testing.T, repo subscription.Repository) map[vo.SubscriptionStatus]string {
	t.Helper()
	ctx := context.Background()
	now := baseTime

	active := newSubscription(t, "sub-active", 1, 20, 200, nil)

	trialEnd := now.Add(7 * 24 * time.Hour)
	trial := newSubscription(t, "sub-trial", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetTrialEndDate(&trialEnd))
	})

	futureStart := now.Add(24 * time.Hour)
	futureEnd := futureStart.AddDate(0, 1, 0)
	pending, err := subscription.NewSubscription("sub-pending", 1, 20, 200, futureStart, futureStart, &futureEnd)
	require.NoError(t, err)

	pastExpiration := now.Add(-24 * time.Hour)
	expired := newSubscription(t, "sub-expired", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetExpirationDate(&pastExpiration))
	})

	cancelledAt := now.Add(-5 * 24 * time.Hour)
	cancellationPending := newSubscription(t, "sub-cancel-pending", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetCancellationDate(&cancelledAt))
	})

	endedPeriodEnd := now.Add(-24 * time.Hour)
	cancelled := newSubscription(t, "sub-cancelled", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetPeriod(now.AddDate(0, -1, 0), &endedPeriodEnd))
		require.NoError(t, s.SetCancellationDate(&cancelledAt))
	})

	archived := newSubscription(t, "sub-archived", 1, 20, 200, func(s *subscription.Subscription) {
		require.NoError(t, s.Archive())
	})

	for _, sub := range []*subscription.Subscription{active, trial, pending, expired, cancellationPending, cancelled, archived} {
		require.NoError(t, repo.Create(ctx, sub))
	}

	return map[vo.SubscriptionStatus]string{
		vo.StatusActive:              "sub-active",
		vo.StatusTrial:               "sub-trial",
		vo.StatusPending:             "sub-pending",
		vo.StatusExpired:             "sub-expired",
		vo.StatusCancellationPending: "sub-cancel-pending",
		vo.StatusCancelled:           "sub-cancelled",
		vo.StatusArchived:            "sub-archived",
	}
}

func TestSubscriptionRepository_List_DerivedStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()
	expected := seedStatusFixtures(t, repo)

	for status, key := range expected {
		status, key := status, key
		t.Run(status.String(), func(t *testing.T) {
			customerID := uint(1)
			subs, total, err := repo.List(ctx, subscription.Filter{
				CustomerID: &customerID,
				Status:     &status,
				Now:        baseTime,
				BaseFilter: query.NewBaseFilter(query.WithPage(1, 100)),
			})
			require.NoError(t, err)
			require.Equal(t, int64(1), total)
			require.Len(t, subs, 1)
			assert.Equal(t, key, subs[0].Key())
			assert.Equal(t, status, subs[0].Status(baseTime))
		})
	}
}

func TestSubscriptionRepository_List_ExcludesArchivedByDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()
	seedStatusFixtures(t, repo)

	subs, total, err := repo.List(ctx, subscription.Filter{
		Now:        baseTime,
		BaseFilter: query.NewBaseFilter(query.WithPage(1, 100)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	for _, sub := range subs {
		assert.False(t, sub.IsArchived())
	}

	subs, total, err = repo.List(ctx, subscription.Filter{
		Now:             baseTime,
		IncludeArchived: true,
		BaseFilter:      query.NewBaseFilter(query.WithPage(1, 100)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, subs, 7)
}

func TestSubscriptionRepository_List_ProductFilterJoinsPlans(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	planRepo := NewPlanRepository(db, &noopLogger{})
	ctx := context.Background()

	planA, err := catalog.NewPlan(10, "pro", "Pro", "")
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(ctx, planA))
	planB, err := catalog.NewPlan(11, "other-pro", "Other Pro", "")
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(ctx, planB))

	require.NoError(t, repo.Create(ctx, newSubscription(t, "sub-a", 1, planA.ID(), 200, nil)))
	require.NoError(t, repo.Create(ctx, newSubscription(t, "sub-b", 1, planB.ID(), 201, nil)))

	productID := uint(10)
	subs, total, err := repo.List(ctx, subscription.Filter{
		ProductID:  &productID,
		Now:        baseTime,
		BaseFilter: query.NewBaseFilter(query.WithPage(1, 100)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub-a", subs[0].Key())
}

func TestSubscriptionRepository_FindByCustomerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubscription(t, "first", 1, 20, 200, nil)))
	require.NoError(t, repo.Create(ctx, newSubscription(t, "second", 1, 21, 201, nil)))
	require.NoError(t, repo.Create(ctx, newSubscription(t, "other-customer", 2, 20, 200, nil)))

	subs, err := repo.FindByCustomerID(ctx, 1, nil, baseTime)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "first", subs[0].Key())
	assert.Equal(t, "second", subs[1].Key())

	active := vo.StatusActive
	subs, err = repo.FindByCustomerID(ctx, 1, &active, baseTime)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestSubscriptionRepository_FindExpiredWithTransitionPlans(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	planRepo := NewPlanRepository(db, &noopLogger{})
	cycleRepo := NewBillingCycleRepository(db, &noopLogger{})
	ctx := context.Background()

	freePlan, err := catalog.NewPlan(10, "free", "Free", "")
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(ctx, freePlan))

	freeForever, err := catalog.NewBillingCycle(freePlan.ID(), "free-forever", "Free Forever", "", nil, catalogvo.DurationForever)
	require.NoError(t, err)
	require.NoError(t, cycleRepo.Create(ctx, freeForever))

	proPlan, err := catalog.NewPlan(10, "pro", "Pro", "")
	require.NoError(t, err)
	cycleID := freeForever.ID()
	proPlan.SetTransitionCycle(&cycleID)
	require.NoError(t, planRepo.Create(ctx, proPlan))

	plainPlan, err := catalog.NewPlan(10, "plain", "Plain", "")
	require.NoError(t, err)
	require.NoError(t, planRepo.Create(ctx, plainPlan))

	older := baseTime.Add(-48 * time.Hour)
	newer := baseTime.Add(-24 * time.Hour)
	cancelledAt := baseTime.Add(-72 * time.Hour)

	expiredLate := newSubscription(t, "expired-late", 1, proPlan.ID(), 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetExpirationDate(&newer))
	})
	expiredEarly := newSubscription(t, "expired-early", 2, proPlan.ID(), 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetExpirationDate(&older))
	})
	expiredPlainPlan := newSubscription(t, "expired-plain", 3, plainPlan.ID(), 201, func(s *subscription.Subscription) {
		require.NoError(t, s.SetExpirationDate(&older))
	})
	stillActive := newSubscription(t, "still-active", 4, proPlan.ID(), 200, nil)
	expiredButCancelled := newSubscription(t, "expired-cancelled", 5, proPlan.ID(), 200, func(s *subscription.Subscription) {
		require.NoError(t, s.SetExpirationDate(&older))
		require.NoError(t, s.SetCancellationDate(&cancelledAt))
	})

	for _, sub := range []*subscription.Subscription{expiredLate, expiredEarly, expiredPlainPlan, stillActive, expiredButCancelled} {
		require.NoError(t, repo.Create(ctx, sub))
	}

	found, err := repo.FindExpiredWithTransitionPlans(ctx, baseTime, 100)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "expired-early", found[0].Key())
	assert.Equal(t, "expired-late", found[1].Key())

	limited, err := repo.FindExpiredWithTransitionPlans(ctx, baseTime, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "expired-early", limited[0].Key())
}

func TestSubscriptionRepository_ExistsByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubscription(t, "acme-sub", 1, 20, 200, nil)))

	exists, err := repo.ExistsByKey(ctx, "acme-sub")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByKey(ctx, "acme-sub-v1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubscriptionRepository_DuplicateKeyFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, &noopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSubscription(t, "acme-sub", 1, 20, 200, nil)))
	err := repo.Create(ctx, newSubscription(t, "acme-sub", 2, 20, 200, nil))
	assert.Error(t, err)
}
