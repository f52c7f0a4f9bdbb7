package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeleteCustomerCommand struct {
	Key string
}

// DeleteCustomerUseCase permanently removes a customer. Only archived
// customers may be deleted; the customer's subscriptions cascade in the
// store.
type DeleteCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewDeleteCustomerUseCase(customerRepo customer.Repository, logger logger.Interface) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, cmd DeleteCustomerCommand) error {
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

	if !cust.IsArchived() {
		return errors.NewDomainError("customer must be archived before deletion", cmd.Key)
	}

	if err := uc.customerRepo.Delete(ctx, cust.ID()); err != nil {
		uc.logger.Errorw("failed to delete customer", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	uc.logger.Infow("customer deleted", "key", cmd.Key)
	return nil
}
