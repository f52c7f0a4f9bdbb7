package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeleteProductCommand struct {
	Key string
}

// DeleteProductUseCase removes a product. Deletion is blocked while any of
// the product's plans still carries subscriptions; association rows cascade
// in the store.
type DeleteProductUseCase struct {
	productRepo      catalog.ProductRepository
	planRepo         catalog.PlanRepository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewDeleteProductUseCase(
	productRepo catalog.ProductRepository,
	planRepo catalog.PlanRepository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo:      productRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return errors.NewNotFoundError("product not found", cmd.Key)
	}

	plans, err := uc.planRepo.GetByProductID(ctx, product.ID())
	if err != nil {
		return fmt.Errorf("failed to get product plans: %w", err)
	}
	for _, plan := range plans {
		count, err := uc.subscriptionRepo.CountByPlanID(ctx, plan.ID())
		if err != nil {
			return fmt.Errorf("failed to count subscriptions: %w", err)
		}
		if count > 0 {
			return errors.NewPreconditionFailedError("product has plans with subscriptions", plan.Key())
		}
	}

	if err := uc.productRepo.Delete(ctx, product.ID()); err != nil {
		uc.logger.Errorw("failed to delete product", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	uc.logger.Infow("product deleted", "key", cmd.Key)
	return nil
}
