package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type GetBillingCycleQuery struct {
	Key string
}

type GetBillingCycleUseCase struct {
	cycleRepo catalog.BillingCycleRepository
	planRepo  catalog.PlanRepository
	logger    logger.Interface
}

func NewGetBillingCycleUseCase(
	cycleRepo catalog.BillingCycleRepository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *GetBillingCycleUseCase {
	return &GetBillingCycleUseCase{
		cycleRepo: cycleRepo,
		planRepo:  planRepo,
		logger:    logger,
	}
}

func (uc *GetBillingCycleUseCase) Execute(ctx context.Context, q GetBillingCycleQuery) (*dto.BillingCycleDTO, error) {
	if q.Key == "" {
		return nil, errors.NewValidationError("billing cycle key is required")
	}

	cycle, err := uc.cycleRepo.GetByKey(ctx, q.Key)
	if err != nil {
		uc.logger.Errorw("failed to get billing cycle", "error", err, "key", q.Key)
		return nil, fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return nil, errors.NewNotFoundError("billing cycle not found", q.Key)
	}

	plan, err := uc.planRepo.GetByID(ctx, cycle.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %d not found", cycle.PlanID())
	}

	return dto.ToBillingCycleDTO(cycle, plan.Key()), nil
}

type ListBillingCyclesQuery struct {
	PlanKey string
}

type ListBillingCyclesUseCase struct {
	cycleRepo catalog.BillingCycleRepository
	planRepo  catalog.PlanRepository
	logger    logger.Interface
}

func NewListBillingCyclesUseCase(
	cycleRepo catalog.BillingCycleRepository,
	planRepo catalog.PlanRepository,
	logger logger.Interface,
) *ListBillingCyclesUseCase {
	return &ListBillingCyclesUseCase{
		cycleRepo: cycleRepo,
		planRepo:  planRepo,
		logger:    logger,
	}
}

func (uc *ListBillingCyclesUseCase) Execute(ctx context.Context, q ListBillingCyclesQuery) ([]*dto.BillingCycleDTO, error) {
	if q.PlanKey == "" {
		return nil, errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, q.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", q.PlanKey)
	}

	cycles, err := uc.cycleRepo.GetByPlanID(ctx, plan.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list billing cycles: %w", err)
	}

	dtos := make([]*dto.BillingCycleDTO, 0, len(cycles))
	for _, cycle := range cycles {
		dtos = append(dtos, dto.ToBillingCycleDTO(cycle, plan.Key()))
	}
	return dtos, nil
}
