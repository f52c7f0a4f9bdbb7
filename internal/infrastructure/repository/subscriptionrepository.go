package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	vo "github.com/planwise-io/planwise/internal/domain/subscription/valueobjects"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/mappers"
	"github.com/planwise-io/planwise/internal/infrastructure/persistence/models"
	"github.com/planwise-io/planwise/internal/shared/db"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

var allowedSubscriptionSortByFields = map[string]bool{
	"id":                   true,
	"key":                  true,
	"customer_id":          true,
	"plan_id":              true,
	"billing_cycle_id":     true,
	"activation_date":      true,
	"expiration_date":      true,
	"current_period_start": true,
	"current_period_end":   true,
	"created_at":           true,
	"updated_at":           true,
}

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// derivedStatusScope compiles a derived subscription status into predicates
// over the date columns. The branches mirror Subscription.Status exactly;
// any change there must be reflected here.
func derivedStatusScope(status vo.SubscriptionStatus, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch status {
		case vo.StatusArchived:
			return q.Where("is_archived = ?", true)
		case vo.StatusCancelled:
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NOT NULL").
				Where("(current_period_end IS NOT NULL AND current_period_end <= ?) OR (current_period_end IS NULL AND cancellation_date <= ?)", now, now)
		case vo.StatusCancellationPending:
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NOT NULL").
				Where("(current_period_end IS NOT NULL AND current_period_end > ?) OR (current_period_end IS NULL AND cancellation_date > ?)", now, now)
		case vo.StatusExpired:
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NULL").
				Where("expiration_date IS NOT NULL AND expiration_date <= ?", now)
		case vo.StatusTrial:
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NULL").
				Where("(expiration_date IS NULL OR expiration_date > ?)", now).
				Where("trial_end_date IS NOT NULL AND trial_end_date > ?", now)
		case vo.StatusPending:
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NULL").
				Where("(expiration_date IS NULL OR expiration_date > ?)", now).
				Where("(trial_end_date IS NULL OR trial_end_date <= ?)", now).
				Where("activation_date > ?", now)
		default: // active
			return q.Where("is_archived = ?", false).
				Where("cancellation_date IS NULL").
				Where("(expiration_date IS NULL OR expiration_date > ?)", now).
				Where("(trial_end_date IS NULL OR trial_end_date <= ?)", now).
				Where("activation_date <= ?", now)
		}
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err, "key", model.Key)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "key", model.Key, "customer_id", model.CustomerID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByKey(ctx context.Context, key string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByStripeSubscriptionID(ctx context.Context, stripeID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("stripe_subscription_id = ?", stripeID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by stripe ID", "stripe_subscription_id", stripeID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", sub.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"customer_id":            model.CustomerID,
			"plan_id":                model.PlanID,
			"billing_cycle_id":       model.BillingCycleID,
			"activation_date":        model.ActivationDate,
			"trial_end_date":         model.TrialEndDate,
			"expiration_date":        model.ExpirationDate,
			"cancellation_date":      model.CancellationDate,
			"current_period_start":   model.CurrentPeriodStart,
			"current_period_end":     model.CurrentPeriodEnd,
			"stripe_subscription_id": model.StripeSubscriptionID,
			"is_archived":            model.IsArchived,
			"transitioned_at":        model.TransitionedAt,
			"metadata":               model.Metadata,
			"version":                model.Version,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.SubscriptionModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete subscription", "id", id, "error", err)
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	r.logger.Infow("subscription deleted", "id", id)
	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	var modelList []*models.SubscriptionModel
	var total int64

	now := filter.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})

	if filter.CustomerID != nil {
		query = query.Where("subscriptions.customer_id = ?", *filter.CustomerID)
	}
	if filter.PlanID != nil {
		query = query.Where("subscriptions.plan_id = ?", *filter.PlanID)
	}
	if filter.BillingCycleID != nil {
		query = query.Where("subscriptions.billing_cycle_id = ?", *filter.BillingCycleID)
	}
	if filter.ProductID != nil {
		query = query.
			Joins("JOIN plans ON plans.id = subscriptions.plan_id").
			Where("plans.product_id = ?", *filter.ProductID)
	}

	if filter.Status != nil {
		query = query.Scopes(derivedStatusScope(*filter.Status, now))
	} else if !filter.IncludeArchived {
		query = query.Where("subscriptions.is_archived = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" || !allowedSubscriptionSortByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "ASC"
	if filter.IsDescending() {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("subscriptions.%s %s", sortBy, order))

	if err := query.Offset(filter.Offset()).Limit(filter.Limit()).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map subscriptions: %w", err)
	}

	return entities, total, nil
}

func (r *SubscriptionRepositoryImpl) FindByCustomerID(ctx context.Context, customerID uint, status *vo.SubscriptionStatus, now time.Time) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	query := r.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if status != nil {
		query = query.Scopes(derivedStatusScope(*status, now))
	}

	if err := query.Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find subscriptions by customer ID", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to find subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) FindExpiredWithTransitionPlans(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	query := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = subscriptions.plan_id").
		Where("plans.transition_cycle_id IS NOT NULL").
		Where("subscriptions.is_archived = ?", false).
		Where("subscriptions.cancellation_date IS NULL").
		Where("subscriptions.expiration_date IS NOT NULL AND subscriptions.expiration_date <= ?", now).
		Order("subscriptions.expiration_date ASC, subscriptions.id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find expired subscriptions with transition plans", "error", err)
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("key = ?", key).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check subscription key existence", "key", key, "error", err)
		return false, fmt.Errorf("failed to check subscription key: %w", err)
	}
	return count > 0, nil
}

func (r *SubscriptionRepositoryImpl) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by plan ID", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) CountByBillingCycleID(ctx context.Context, billingCycleID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("billing_cycle_id = ?", billingCycleID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by billing cycle ID", "billing_cycle_id", billingCycleID, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}
