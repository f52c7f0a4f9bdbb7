package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CreateProductCommand struct {
	Key         string
	DisplayName string
	Description string
	Metadata    map[string]interface{}
}

type CreateProductUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewCreateProductUseCase(
	productRepo catalog.ProductRepository,
	logger logger.Interface,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) (*dto.ProductDTO, error) {
	product, err := catalog.NewProduct(cmd.Key, cmd.DisplayName, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError("invalid product", err.Error())
	}
	if cmd.Metadata != nil {
		if err := product.Update(nil, nil, cmd.Metadata); err != nil {
			return nil, errors.NewValidationError("invalid product metadata", err.Error())
		}
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("product key already exists", cmd.Key)
		}
		uc.logger.Errorw("failed to create product", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	uc.logger.Infow("product created", "key", product.Key())
	return dto.ToProductDTO(product), nil
}
