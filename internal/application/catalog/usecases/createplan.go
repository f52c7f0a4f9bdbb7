package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CreatePlanCommand struct {
	ProductKey  string
	Key         string
	DisplayName string
	Description string
	Metadata    map[string]interface{}
}

type CreatePlanUseCase struct {
	planRepo    catalog.PlanRepository
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewCreatePlanUseCase(
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:    planRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	if cmd.ProductKey == "" {
		return nil, errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, cmd.ProductKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", cmd.ProductKey)
	}

	plan, err := catalog.NewPlan(product.ID(), cmd.Key, cmd.DisplayName, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", err.Error())
	}
	if cmd.Metadata != nil {
		if err := plan.Update(nil, nil, cmd.Metadata); err != nil {
			return nil, errors.NewValidationError("invalid plan metadata", err.Error())
		}
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("plan key already exists", cmd.Key)
		}
		uc.logger.Errorw("failed to create plan", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "key", plan.Key(), "product_key", product.Key())
	return dto.ToPlanDTO(plan, product.Key(), nil), nil
}
