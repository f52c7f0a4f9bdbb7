package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/application/catalog/dto"
	"github.com/planwise-io/planwise/internal/domain/catalog"
	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type CreateFeatureCommand struct {
	Key          string
	DisplayName  string
	Description  string
	ValueType    string
	DefaultValue string
	GroupName    *string
	Metadata     map[string]interface{}
}

type CreateFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewCreateFeatureUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *CreateFeatureUseCase {
	return &CreateFeatureUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *CreateFeatureUseCase) Execute(ctx context.Context, cmd CreateFeatureCommand) (*dto.FeatureDTO, error) {
	valueType := vo.FeatureValueType(cmd.ValueType)
	if !valueType.IsValid() {
		return nil, errors.NewValidationError("invalid value type", cmd.ValueType)
	}

	feature, err := catalog.NewFeature(cmd.Key, cmd.DisplayName, cmd.Description, valueType, cmd.DefaultValue)
	if err != nil {
		return nil, errors.NewValidationError("invalid feature", err.Error())
	}
	if cmd.GroupName != nil {
		feature.SetGroupName(cmd.GroupName)
	}
	if cmd.Metadata != nil {
		if err := feature.Update(nil, nil, nil, cmd.Metadata); err != nil {
			return nil, errors.NewValidationError("invalid feature metadata", err.Error())
		}
	}

	if err := uc.featureRepo.Create(ctx, feature); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("feature key already exists", cmd.Key)
		}
		uc.logger.Errorw("failed to create feature", "error", err, "key", cmd.Key)
		return nil, fmt.Errorf("failed to create feature: %w", err)
	}

	uc.logger.Infow("feature created", "key", feature.Key(), "value_type", valueType.String())
	return dto.ToFeatureDTO(feature), nil
}
