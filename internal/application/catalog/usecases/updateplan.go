package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type UpdatePlanCommand struct {
	Key         string
	DisplayName *string
	Description *string
	Metadata    map[string]interface{}
}

type UpdatePlanUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found", cmd.Key)
	}

	if err := plan.Update(cmd.DisplayName, cmd.Description, cmd.Metadata); err != nil {
		return errors.NewValidationError("invalid plan update", err.Error())
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated", "key", cmd.Key)
	return nil
}

type ArchivePlanCommand struct {
	Key       string
	Unarchive bool
}

type ArchivePlanUseCase struct {
	planRepo catalog.PlanRepository
	logger   logger.Interface
}

func NewArchivePlanUseCase(planRepo catalog.PlanRepository, logger logger.Interface) *ArchivePlanUseCase {
	return &ArchivePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ArchivePlanUseCase) Execute(ctx context.Context, cmd ArchivePlanCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("plan key is required")
	}

	plan, err := uc.planRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return errors.NewNotFoundError("plan not found", cmd.Key)
	}

	if cmd.Unarchive {
		err = plan.Unarchive()
	} else {
		err = plan.Archive()
	}
	if err != nil {
		return errors.NewDomainError("cannot change plan archive state", err.Error())
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan archive state", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan archive state changed", "key", cmd.Key, "archived", !cmd.Unarchive)
	return nil
}
