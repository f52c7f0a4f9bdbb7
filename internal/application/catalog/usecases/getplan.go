package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type GetPlanQuery struct {
	Key string
}

type GetPlanUseCase struct {
	planRepo    catalog.PlanRepository
	productRepo catalog.ProductRepository
	cycleRepo   catalog.BillingCycleRepository
	logger      logger.Interface
}

func NewGetPlanUseCase(
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	logger logger.Interface,
) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo:    planRepo,
		productRepo: productRepo,
		cycleRepo:   cycleRepo,
		logger:      logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, q GetPlanQuery) (*dto.PlanDTO, error) {
	if q.Key == "" {
		return nil, errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, q.Key)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "key", q.Key)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("plan not found", q.Key)
	}

	return uc.toDTO(ctx, plan)
}

func (uc *GetPlanUseCase) toDTO(ctx context.Context, plan *catalog.Plan) (*dto.PlanDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, plan.ProductID())
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d not found", plan.ProductID())
	}

	var transitionKey *string
	if plan.TransitionCycleID() != nil {
		cycle, err := uc.cycleRepo.GetByID(ctx, *plan.TransitionCycleID())
		if err != nil {
			return nil, fmt.Errorf("failed to get transition cycle: %w", err)
		}
		if cycle != nil {
			key := cycle.Key()
			transitionKey = &key
		}
	}

	return dto.ToPlanDTO(plan, product.Key(), transitionKey), nil
}

type ListPlansQuery struct {
	ProductKey string
	Status     string
	query.BaseFilter
}

type ListPlansResult struct {
	Plans []*dto.PlanDTO `json:"plans"`
	Total int64          `json:"total"`
}

type ListPlansUseCase struct {
	planRepo    catalog.PlanRepository
	productRepo catalog.ProductRepository
	cycleRepo   catalog.BillingCycleRepository
	logger      logger.Interface
}

func NewListPlansUseCase(
	planRepo catalog.PlanRepository,
	productRepo catalog.ProductRepository,
	cycleRepo catalog.BillingCycleRepository,
	logger logger.Interface,
) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo:    planRepo,
		productRepo: productRepo,
		cycleRepo:   cycleRepo,
		logger:      logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, q ListPlansQuery) (*ListPlansResult, error) {
	filter := catalog.PlanFilter{BaseFilter: q.BaseFilter}

	if q.ProductKey != "" {
		product, err := uc.productRepo.GetByKey(ctx, q.ProductKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product key: %w", err)
		}
		if product == nil {
			return &ListPlansResult{Plans: []*dto.PlanDTO{}}, nil
		}
		id := product.ID()
		filter.ProductID = &id
	}
	if q.Status != "" {
		status := vo.EntityStatus(q.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	plans, total, err := uc.planRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	getter := &GetPlanUseCase{planRepo: uc.planRepo, productRepo: uc.productRepo, cycleRepo: uc.cycleRepo, logger: uc.logger}
	dtos := make([]*dto.PlanDTO, 0, len(plans))
	for _, plan := range plans {
		planDTO, err := getter.toDTO(ctx, plan)
		if err != nil {
			uc.logger.Warnw("skipping plan with dangling references", "key", plan.Key(), "error", err)
			continue
		}
		dtos = append(dtos, planDTO)
	}

	return &ListPlansResult{Plans: dtos, Total: total}, nil
}
