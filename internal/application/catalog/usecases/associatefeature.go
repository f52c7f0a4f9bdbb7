package usecases

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type AssociateFeatureCommand struct {
	ProductKey string
	FeatureKey string
	Dissociate bool
}

// AssociateFeatureUseCase links or unlinks a feature and a product.
// Association is what makes a feature "offered" by the product; associating
// an already linked pair is a no-op.
type AssociateFeatureUseCase struct {
	productRepo catalog.ProductRepository
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewAssociateFeatureUseCase(
	productRepo catalog.ProductRepository,
	featureRepo catalog.FeatureRepository,
	logger logger.Interface,
) *AssociateFeatureUseCase {
	return &AssociateFeatureUseCase{
		productRepo: productRepo,
		featureRepo: featureRepo,
		logger:      logger,
	}
}

func (uc *AssociateFeatureUseCase) Execute(ctx context.Context, cmd AssociateFeatureCommand) error {
	if cmd.ProductKey == "" || cmd.FeatureKey == "" {
		return errors.NewValidationError("product key and feature key are required")
	}

	product, err := uc.productRepo.GetByKey(ctx, cmd.ProductKey)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return errors.NewNotFoundError("product not found", cmd.ProductKey)
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.FeatureKey)
	if err != nil {
		return fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return errors.NewNotFoundError("feature not found", cmd.FeatureKey)
	}

	if cmd.Dissociate {
		err = uc.productRepo.DissociateFeature(ctx, product.ID(), feature.ID())
	} else {
		err = uc.productRepo.AssociateFeature(ctx, product.ID(), feature.ID())
	}
	if err != nil {
		uc.logger.Errorw("failed to change feature association", "error", err,
			"product_key", cmd.ProductKey, "feature_key", cmd.FeatureKey)
		return fmt.Errorf("failed to change feature association: %w", err)
	}

	uc.logger.Infow("feature association changed",
		"product_key", cmd.ProductKey,
		"feature_key", cmd.FeatureKey,
		"dissociated", cmd.Dissociate,
	)
	return nil
}

type ListProductFeaturesQuery struct {
	ProductKey string
}

type ListProductFeaturesUseCase struct {
	productRepo catalog.ProductRepository
	logger      logger.Interface
}

func NewListProductFeaturesUseCase(productRepo catalog.ProductRepository, logger logger.Interface) *ListProductFeaturesUseCase {
	return &ListProductFeaturesUseCase{productRepo: productRepo, logger: logger}
}

func (uc *ListProductFeaturesUseCase) Execute(ctx context.Context, q ListProductFeaturesQuery) ([]*dto.FeatureDTO, error) {
	if q.ProductKey == "" {
		return nil, errors.NewValidationError("product key is required")
	}

	product, err := uc.productRepo.GetByKey(ctx, q.ProductKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.NewNotFoundError("product not found", q.ProductKey)
	}

	features, err := uc.productRepo.GetAssociatedFeatures(ctx, product.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to get associated features: %w", err)
	}

	return lo.Map(features, func(f *catalog.Feature, _ int) *dto.FeatureDTO { return dto.ToFeatureDTO(f) }), nil
}
