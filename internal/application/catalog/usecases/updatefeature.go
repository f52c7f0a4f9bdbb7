package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type UpdateFeatureCommand struct {
	Key          string
	DisplayName  *string
	Description  *string
	DefaultValue *string
	GroupName    *string
	Metadata     map[string]interface{}
}

type UpdateFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewUpdateFeatureUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *UpdateFeatureUseCase {
	return &UpdateFeatureUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *UpdateFeatureUseCase) Execute(ctx context.Context, cmd UpdateFeatureCommand) (*dto.FeatureDTO, error) {
	if cmd.Key == "" {
		return nil, errors.NewValidationError("feature key is required")
	}

	feature, err := uc.featureRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get feature", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return nil, errors.NewNotFoundError("feature not found", cmd.Key)
	}

	if err := feature.Update(cmd.DisplayName, cmd.Description, cmd.DefaultValue, cmd.Metadata); err != nil {
		return nil, errors.NewValidationError("invalid feature update", err.Error())
	}
	if cmd.GroupName != nil {
		feature.SetGroupName(cmd.GroupName)
	}

	if err := uc.featureRepo.Update(ctx, feature); err != nil {
		uc.logger.Errorw("failed to update feature", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to update feature: %w", err)
	}

	uc.logger.Infow("feature updated", "key", cmd.Key)
	return dto.ToFeatureDTO(feature), nil
}

type ArchiveFeatureCommand struct {
	Key       string
	Unarchive bool
}

type ArchiveFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewArchiveFeatureUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *ArchiveFeatureUseCase {
	return &ArchiveFeatureUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *ArchiveFeatureUseCase) Execute(ctx context.Context, cmd ArchiveFeatureCommand) error {
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

	if cmd.Unarchive {
		err = feature.Unarchive()
	} else {
		err = feature.Archive()
	}
	if err != nil {
		return errors.NewDomainError("cannot change feature archive state", err.Error())
	}

	if err := uc.featureRepo.Update(ctx, feature); err != nil {
		uc.logger.Errorw("failed to update feature archive state", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to update feature: %w", err)
	}

	uc.logger.Infow("feature archive state changed", "key", cmd.Key, "archived", !cmd.Unarchive)
	return nil
}
