package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	catalogvo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	subvo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/clock"
)

// transitionWorld wires the worker against an expiring plan "pro" whose
// transition target is the forever cycle of plan "free-forever".
type transitionWorld struct {
	subscriptionRepo *mockSubscriptionRepository
	planRepo         *mockPlanRepository
	cycleRepo        *mockBillingCycleRepository
	txManager        *fakeTxManager

	proPlan     *catalog.Plan
	freePlan    *catalog.Plan
	targetCycle *catalog.BillingCycle

	created []*subscription.Subscription
	updated []*subscription.Subscription
}

func newTransitionWorld(t *testing.T) *transitionWorld {
	w := &transitionWorld{
		subscriptionRepo: &mockSubscriptionRepository{},
		planRepo:         &mockPlanRepository{},
		cycleRepo:        &mockBillingCycleRepository{},
		txManager:        &fakeTxManager{},

		proPlan:     testPlan(t, 20, 10, "pro", uintPtr(205)),
		freePlan:    testPlan(t, 21, 10, "free-forever", nil),
		targetCycle: testCycle(t, 205, 21, "forever", nil, catalogvo.DurationForever),
	}

	w.planRepo.GetByIDFunc = func(ctx context.Context, id uint) (*catalog.Plan, error) {
		switch id {
		case w.proPlan.ID():
			return w.proPlan, nil
		case w.freePlan.ID():
			return w.freePlan, nil
		}
		return nil, nil
	}
	w.cycleRepo.GetByIDFunc = func(ctx context.Context, id uint) (*catalog.BillingCycle, error) {
		if id == w.targetCycle.ID() {
			return w.targetCycle, nil
		}
		return nil, nil
	}
	w.subscriptionRepo.CreateFunc = func(ctx context.Context, sub *subscription.Subscription) error {
		w.created = append(w.created, sub)
		return nil
	}
	w.subscriptionRepo.UpdateFunc = func(ctx context.Context, sub *subscription.Subscription) error {
		w.updated = append(w.updated, sub)
		return nil
	}

	return w
}

func (w *transitionWorld) useCase(now time.Time) *TransitionExpiredUseCase {
	return NewTransitionExpiredUseCase(
		w.subscriptionRepo,
		w.planRepo,
		w.cycleRepo,
		w.txManager,
		clock.NewFake(now),
		&mockLogger{},
	)
}

func (w *transitionWorld) withCandidates(subs ...*subscription.Subscription) {
	w.subscriptionRepo.FindExpiredWithTransitionPlansFunc = func(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
		return subs, nil
	}
}

func uintPtr(v uint) *uint { return &v }

func TestTransitionExpiredUseCase_Execute_TransitionsExpiredSubscription(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	expired := testExpiredSubscription(t, 1, "s1", 7, 20, 200)
	w.withCandidates(expired)

	report, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Transitioned)
	assert.Equal(t, 1, report.Archived)
	assert.Empty(t, report.Errors)

	// Original archived with the transition stamped.
	require.Len(t, w.updated, 1)
	assert.True(t, w.updated[0].IsArchived())
	require.NotNil(t, w.updated[0].TransitionedAt())
	assert.Equal(t, now, *w.updated[0].TransitionedAt())
	assert.Equal(t, subvo.StatusArchived, w.updated[0].Status(now))

	// Successor opened on the target cycle under the versioned key.
	require.Len(t, w.created, 1)
	successor := w.created[0]
	assert.Equal(t, "s1-v1", successor.Key())
	assert.Equal(t, uint(7), successor.CustomerID())
	assert.Equal(t, uint(21), successor.PlanID())
	assert.Equal(t, uint(205), successor.BillingCycleID())
	assert.Equal(t, now, successor.CurrentPeriodStart())
	assert.Nil(t, successor.CurrentPeriodEnd())
	assert.Nil(t, successor.StripeSubscriptionID())
	assert.Equal(t, subvo.StatusActive, successor.Status(now))

	assert.Equal(t, 1, w.txManager.Calls)
}

func TestTransitionExpiredUseCase_Execute_IncrementsVersionedKey(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	w.withCandidates(testExpiredSubscription(t, 1, "s1-v1", 7, 20, 200))

	report, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Transitioned)
	require.Len(t, w.created, 1)
	assert.Equal(t, "s1-v2", w.created[0].Key())
}

func TestTransitionExpiredUseCase_Execute_CopiesMetadataToSuccessor(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	expiration := fixtureTime.Add(time.Hour)
	expired, err := subscription.ReconstructSubscription(
		1, "s1", 7, 20, 200,
		fixtureTime, nil, &expiration, nil,
		fixtureTime, nil,
		nil, false, nil,
		map[string]interface{}{"source": "import"},
		1, fixtureTime, fixtureTime,
	)
	require.NoError(t, err)

	w := newTransitionWorld(t)
	w.withCandidates(expired)

	_, err = w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	require.Len(t, w.created, 1)
	assert.Equal(t, map[string]interface{}{"source": "import"}, w.created[0].Metadata())

	// The successor holds its own copy; the archived record's metadata must
	// not change when the successor's is mutated later.
	w.created[0].Metadata()["source"] = "mutated"
	assert.Equal(t, map[string]interface{}{"source": "import"}, expired.Metadata())
}

func TestTransitionExpiredUseCase_Execute_EmptyCandidateSet(t *testing.T) {
	w := newTransitionWorld(t)
	w.withCandidates()

	report, err := w.useCase(fixtureTime).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Transitioned)
	assert.NotNil(t, report.Errors)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 0, w.txManager.Calls)
}

func TestTransitionExpiredUseCase_Execute_OneFailureDoesNotAbortBatch(t *testing.T) {
	// The first candidate's plan lost its transition cycle between the
	// candidate query and processing; the second must still go through.
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	orphanPlan := testPlan(t, 22, 10, "orphan", nil)
	basePlanLookup := w.planRepo.GetByIDFunc
	w.planRepo.GetByIDFunc = func(ctx context.Context, id uint) (*catalog.Plan, error) {
		if id == orphanPlan.ID() {
			return orphanPlan, nil
		}
		return basePlanLookup(ctx, id)
	}
	w.withCandidates(
		testExpiredSubscription(t, 1, "s1", 7, 22, 200),
		testExpiredSubscription(t, 2, "s2", 8, 20, 200),
	)

	report, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Transitioned)
	assert.Equal(t, 1, report.Archived)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "s1", report.Errors[0].SubscriptionKey)
	assert.Contains(t, report.Errors[0].Message, "transition billing cycle")

	require.Len(t, w.created, 1)
	assert.Equal(t, "s2-v1", w.created[0].Key())
}

func TestTransitionExpiredUseCase_Execute_ExistingSuccessorKeyIsReported(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	w.withCandidates(testExpiredSubscription(t, 1, "s1", 7, 20, 200))
	w.subscriptionRepo.ExistsByKeyFunc = func(ctx context.Context, key string) (bool, error) {
		return key == "s1-v1", nil
	}

	report, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Transitioned)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Message, "already exists")
	assert.Empty(t, w.created)
	assert.Equal(t, 0, w.txManager.Calls)
}

func TestTransitionExpiredUseCase_Execute_BatchSize(t *testing.T) {
	var gotLimit int
	var gotNow time.Time
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	w.subscriptionRepo.FindExpiredWithTransitionPlansFunc = func(ctx context.Context, at time.Time, limit int) ([]*subscription.Subscription, error) {
		gotLimit = limit
		gotNow = at
		return nil, nil
	}

	_, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{BatchSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, now, gotNow)

	_, err = w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTransitionBatchSize, gotLimit)
}

func TestTransitionExpiredUseCase_Execute_ArchiveFailureRollsBack(t *testing.T) {
	now := fixtureTime.Add(48 * time.Hour)
	w := newTransitionWorld(t)
	w.withCandidates(testExpiredSubscription(t, 1, "s1", 7, 20, 200))
	w.subscriptionRepo.UpdateFunc = func(ctx context.Context, sub *subscription.Subscription) error {
		return assert.AnError
	}

	report, err := w.useCase(now).Execute(context.Background(), TransitionExpiredCommand{})

	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 0, report.Transitioned)
	assert.Empty(t, w.created)
}
