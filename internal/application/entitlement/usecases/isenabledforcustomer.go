package usecases

import (
	"context"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type IsEnabledForCustomerQuery struct {
	CustomerKey string
	ProductKey  string
	FeatureKey  string
}

// IsEnabledForCustomerUseCase is the toggle convenience: enabled iff the
// resolved value is the literal "true", case-insensitive.
type IsEnabledForCustomerUseCase struct {
	getValue *GetValueForCustomerUseCase
	logger   logger.Interface
}

func NewIsEnabledForCustomerUseCase(
	getValue *GetValueForCustomerUseCase,
	logger logger.Interface,
) *IsEnabledForCustomerUseCase {
	return &IsEnabledForCustomerUseCase{
		getValue: getValue,
		logger:   logger,
	}
}

func (uc *IsEnabledForCustomerUseCase) Execute(ctx context.Context, query IsEnabledForCustomerQuery) (bool, error) {
	value, err := uc.getValue.Execute(ctx, GetValueForCustomerQuery{
		CustomerKey: query.CustomerKey,
		ProductKey:  query.ProductKey,
		FeatureKey:  query.FeatureKey,
	})
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}
	return vo.IsTruthy(*value), nil
}
