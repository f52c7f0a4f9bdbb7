package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/customer/dto"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type UpdateCustomerCommand struct {
	Key         string
	DisplayName *string
	Email       *string
	ExternalID  *string
	Metadata    map[string]interface{}
}

type UpdateCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewUpdateCustomerUseCase(customerRepo customer.Repository, logger logger.Interface) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, cmd UpdateCustomerCommand) (*dto.CustomerDTO, error) {
	if cmd.Key == "" {
		return nil, errors.NewValidationError("customer key is required")
	}

	cust, err := uc.customerRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get customer", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		return nil, errors.NewNotFoundError("customer not found", cmd.Key)
	}

	if err := cust.Update(cmd.DisplayName, cmd.Email, cmd.ExternalID, cmd.Metadata); err != nil {
		return nil, errors.NewValidationError("invalid customer update", err.Error())
	}

	if err := uc.customerRepo.Update(ctx, cust); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("external billing id already in use")
		}
		uc.logger.Errorw("failed to update customer", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	uc.logger.Infow("customer updated", "key", cmd.Key)
	return dto.ToCustomerDTO(cust), nil
}

type ArchiveCustomerCommand struct {
	Key       string
	Unarchive bool
}

type ArchiveCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewArchiveCustomerUseCase(customerRepo customer.Repository, logger logger.Interface) *ArchiveCustomerUseCase {
	return &ArchiveCustomerUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *ArchiveCustomerUseCase) Execute(ctx context.Context, cmd ArchiveCustomerCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("customer key is required")
	}

	cust, err := uc.customerRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		return errors.NewNotFoundError("customer not found", cmd.Key)
	}

	if cmd.Unarchive {
		err = cust.Unarchive()
	} else {
		err = cust.Archive()
	}
	if err != nil {
		return errors.NewDomainError("cannot change customer archive state", err.Error())
	}

	if err := uc.customerRepo.Update(ctx, cust); err != nil {
		uc.logger.Errorw("failed to update customer archive state", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update customer: %w", err)
	}

	uc.logger.Infow("customer archive state changed", "key", cmd.Key, "archived", !cmd.Unarchive)
	return nil
}
