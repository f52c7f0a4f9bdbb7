package usecases

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type GetProductQuery struct {
	Key string
}

type GetProductUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewGetProductUseCase(productRepo catalog.ProductRepository, logger logger.Interface) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo, logger: logger}
}

func (uc *GetProductUseCase) Execute(ctx context.Context, q GetProductQuery) (*dto.ProductDTO, error) {
	if q.Key == "" {
		return nil, errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, q.Key)
	if err != nil {
		uc.logger.Errorw("failed to get product", "error", err, "key", q.Key)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", q.Key)
	}

	return dto.ToProductDTO(product), nil
}

type ListProductsQuery struct {
	Status string
	query.BaseFilter
}

type ListProductsResult struct {
	Products []*dto.ProductDTO `json:"products"`
	Total    int64             `json:"total"`
}

type ListProductsUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewListProductsUseCase(productRepo catalog.ProductRepository, logger logger.Interface) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo, logger: logger}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, q ListProductsQuery) (*ListProductsResult, error) {
	filter := catalog.ProductFilter{BaseFilter: q.BaseFilter}
	if q.Status != "" {
		status := vo.EntityStatus(q.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	products, total, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list products", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListProductsResult{
		Products: lo.Map(products, func(p *catalog.Product, _ int) *dto.ProductDTO { return dto.ToProductDTO(p) }),
		Total:    total,
	}, nil
}
