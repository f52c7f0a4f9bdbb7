package usecases

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/planwise-io/planwise/internal/application/customer/dto"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/domain/customer"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type GetCustomerQuery struct {
	Key string
}

type GetCustomerUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewGetCustomerUseCase(customerRepo customer.Repository, logger logger.Interface) *GetCustomerUseCase {
	return &GetCustomerUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *GetCustomerUseCase) Execute(ctx context.Context, q GetCustomerQuery) (*dto.CustomerDTO, error) {
	if q.Key == "" {
		return nil, errors.NewValidationError("customer key is required")
	}

	cust, err := uc.customerRepo.GetByKey(ctx, q.Key)
	if err != nil {
		uc.logger.Errorw("failed to get customer", "error", err, "key", q.Key)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if cust == nil {
		return nil, errors.NewNotFoundError("customer not found", q.Key)
	}

	return dto.ToCustomerDTO(cust), nil
}

type ListCustomersQuery struct {
	Status string
	Search string
	query.BaseFilter
}

type ListCustomersResult struct {
	Customers []*dto.CustomerDTO `json:"customers"`
	Total     int64              `json:"total"`
}

type ListCustomersUseCase struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewListCustomersUseCase(customerRepo customer.Repository, logger logger.Interface) *ListCustomersUseCase {
	return &ListCustomersUseCase{customerRepo: customerRepo, logger: logger}
}

func (uc *ListCustomersUseCase) Execute(ctx context.Context, q ListCustomersQuery) (*ListCustomersResult, error) {
	filter := customer.Filter{Search: q.Search, BaseFilter: q.BaseFilter}
	if q.Status != "" {
		status := vo.EntityStatus(q.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	customers, total, err := uc.customerRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list customers", "error", err)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return &ListCustomersResult{
		Customers: lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerDTO { return dto.ToCustomerDTO(c) }),
		Total:     total,
	}, nil
}
