package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type DeleteFeatureCommand struct {
	Key string
}

// DeleteFeatureUseCase removes a feature; product associations and plan
// values cascade in the store.
type DeleteFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewDeleteFeatureUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *DeleteFeatureUseCase {
	return &DeleteFeatureUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *DeleteFeatureUseCase) Execute(ctx context.Context, cmd DeleteFeatureCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("feature key is required")
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return errors.NewNotFoundError("feature not found", cmd.Key)
	}

	if err := uc.featureRepo.Delete(ctx, feature.ID()); err != nil {
		uc.logger.Errorw("failed to delete feature", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to delete feature: %w", err)
	}

	uc.logger.Infow("feature deleted", "key", cmd.Key)
	return nil
}
