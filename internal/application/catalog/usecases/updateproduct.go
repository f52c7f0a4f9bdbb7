package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type UpdateProductCommand struct {
	Key         string
	DisplayName *string
	Description *string
	Metadata    map[string]interface{}
}

type UpdateProductUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewUpdateProductUseCase(productRepo catalog.ProductRepository, logger logger.Interface) *UpdateProductUseCase {
	return &UpdateProductUseCase{productRepo: productRepo, logger: logger}
}

func (uc *UpdateProductUseCase) Execute(ctx context.Context, cmd UpdateProductCommand) (*dto.ProductDTO, error) {
	if cmd.Key == "" {
		return nil, errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get product", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", cmd.Key)
	}

	if err := product.Update(cmd.DisplayName, cmd.Description, cmd.Metadata); err != nil {
		return nil, errors.NewValidationError("invalid product update", err.Error())
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		uc.logger.Errorw("failed to update product", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	uc.logger.Infow("product updated", "key", cmd.Key)
	return dto.ToProductDTO(product), nil
}

type ArchiveProductCommand struct {
	Key       string
	Unarchive bool
}

type ArchiveProductUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewArchiveProductUseCase(productRepo catalog.ProductRepository, logger logger.Interface) *ArchiveProductUseCase {
	return &ArchiveProductUseCase{productRepo: productRepo, logger: logger}
}

func (uc *ArchiveProductUseCase) Execute(ctx context.Context, cmd ArchiveProductCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return errors.NewNotFoundError("product not found", cmd.Key)
	}

	if cmd.Unarchive {
		err = product.Unarchive()
	} else {
		err = product.Archive()
	}
	if err != nil {
		return errors.NewDomainError("cannot change product archive state", err.Error())
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		uc.logger.Errorw("failed to update product archive state", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update product: %w", err)
	}

	uc.logger.Infow("product archive state changed", "key", cmd.Key, "archived", !cmd.Unarchive)
	return nil
}
