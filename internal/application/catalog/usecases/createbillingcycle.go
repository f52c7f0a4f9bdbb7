package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CreateBillingCycleCommand struct {
	PlanKey           string
	Key               string
	DisplayName       string
	Description       string
	DurationValue     *int
	DurationUnit      string
	ExternalProductID *string
}

type CreateBillingCycleUseCase struct {
	cycleRepo catalog.BillingCycleRepository
	planRepo  catalog.PlanRepository
	logger    logger.Interface
}

func NewCreateBillingCycleUseCase(
	cycleRepo catalog.BillingCycleRepository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *CreateBillingCycleUseCase {
	return &CreateBillingCycleUseCase{
		cycleRepo: cycleRepo,
		planRepo:  planRepo,
		logger:    logger,
	}
}

func (uc *CreateBillingCycleUseCase) Execute(ctx context.Context, cmd CreateBillingCycleCommand) (*dto.BillingCycleDTO, error) {
	if cmd.PlanKey == "" {
		return nil, errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", cmd.PlanKey)
	}

	unit := vo.DurationUnit(cmd.DurationUnit)
	cycle, err := catalog.NewBillingCycle(plan.ID(), cmd.Key, cmd.DisplayName, cmd.Description, cmd.DurationValue, unit)
	if err != nil {
		return nil, errors.NewValidationError("invalid billing cycle", err.Error())
	}
	if cmd.ExternalProductID != nil {
		if err := cycle.Update(nil, nil, cmd.ExternalProductID); err != nil {
			return nil, errors.NewValidationError("invalid external product id", err.Error())
		}
	}

	if err := uc.cycleRepo.Create(ctx, cycle); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("billing cycle key already exists", cmd.Key)
		}
		uc.logger.Errorw("failed to create billing cycle", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create billing cycle: %w", err)
	}

	uc.logger.Infow("billing cycle created", "key", cycle.Key(), "plan_key", plan.Key())
	return dto.ToBillingCycleDTO(cycle, plan.Key()), nil
}
