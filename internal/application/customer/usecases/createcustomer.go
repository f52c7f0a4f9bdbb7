package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/customer/dto"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CreateCustomerCommand struct {
	Key         string
	DisplayName string
	Email       *string
	ExternalID  *string
	Metadata    map[string]interface{}
}

type CreateCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewCreateCustomerUseCase(customerRepo customer.Repository, logger logger.Interface) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *CreateCustomerUseCase) Execute(ctx context.Context, cmd CreateCustomerCommand) (*dto.CustomerDTO, error) {
	cust, err := customer.NewCustomer(cmd.Key, cmd.DisplayName, cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid customer", err.Error())
	}
	if cmd.ExternalID != nil || cmd.Metadata != nil {
		if err := cust.Update(nil, nil, cmd.ExternalID, cmd.Metadata); err != nil {
			return nil, errors.NewValidationError("invalid customer attributes", err.Error())
		}
	}

	if err := uc.customerRepo.Create(ctx, cust); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("customer key or external billing id already exists", cmd.Key)
		}
		uc.logger.Errorw("failed to create customer", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	uc.logger.Infow("customer created", "key", cust.Key())
	return dto.ToCustomerDTO(cust), nil
}
