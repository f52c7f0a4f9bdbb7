package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type UpdateBillingCycleCommand struct {
	Key               string
	DisplayName       *string
	Description       *string
	ExternalProductID *string
}

// UpdateBillingCycleUseCase changes a cycle's descriptive attributes. Key,
// plan and duration are immutable after creation.
type UpdateBillingCycleUseCase struct {
	cycleRepo catalog.BillingCycleRepository
	logger    logger.Interface
}

func NewUpdateBillingCycleUseCase(cycleRepo catalog.BillingCycleRepository, logger logger.Interface) *UpdateBillingCycleUseCase {
	return &UpdateBillingCycleUseCase{cycleRepo: cycleRepo, logger: logger}
}

func (uc *UpdateBillingCycleUseCase) Execute(ctx context.Context, cmd UpdateBillingCycleCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("billing cycle key is required")
	}

	cycle, err := uc.cycleRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get billing cycle", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return errors.NewNotFoundError("billing cycle not found", cmd.Key)
	}

	if err := cycle.Update(cmd.DisplayName, cmd.Description, cmd.ExternalProductID); err != nil {
		return errors.NewValidationError("invalid billing cycle update", err.Error())
	}

	if err := uc.cycleRepo.Update(ctx, cycle); err != nil {
		uc.logger.Errorw("failed to update billing cycle", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update billing cycle: %w", err)
	}

	uc.logger.Infow("billing cycle updated", "key", cmd.Key)
	return nil
}

type ArchiveBillingCycleCommand struct {
	Key       string
	Unarchive bool
}

type ArchiveBillingCycleUseCase struct {
	cycleRepo catalog.BillingCycleRepository
	logger    logger.Interface
}

func NewArchiveBillingCycleUseCase(cycleRepo catalog.BillingCycleRepository, logger logger.Interface) *ArchiveBillingCycleUseCase {
	return &ArchiveBillingCycleUseCase{cycleRepo: cycleRepo, logger: logger}
}

func (uc *ArchiveBillingCycleUseCase) Execute(ctx context.Context, cmd ArchiveBillingCycleCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("billing cycle key is required")
	}

	cycle, err := uc.cycleRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get billing cycle: %w", err)
	}
	if cycle == nil {
		return errors.NewNotFoundError("billing cycle not found", cmd.Key)
	}

	if cmd.Unarchive {
		err = cycle.Unarchive()
	} else {
		err = cycle.Archive()
	}
	if err != nil {
		return errors.NewDomainError("cannot change billing cycle archive state", err.Error())
	}

	if err := uc.cycleRepo.Update(ctx, cycle); err != nil {
		uc.logger.Errorw("failed to update billing cycle archive state", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update billing cycle: %w", err)
	}

	uc.logger.Infow("billing cycle archive state changed", "key", cmd.Key, "archived", !cmd.Unarchive)
	return nil
}
