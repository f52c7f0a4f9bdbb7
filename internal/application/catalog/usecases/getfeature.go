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

type GetFeatureQuery struct {
	Key string
}

type GetFeatureUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewGetFeatureUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *GetFeatureUseCase {
	return &GetFeatureUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *GetFeatureUseCase) Execute(ctx context.Context, q GetFeatureQuery) (*dto.FeatureDTO, error) {
	if q.Key == "" {
		return nil, errors.NewValidationError("feature key is required")
	}

	feature, err := uc.featureRepo.GetByKey(ctx, q.Key)
	if err != nil {
		uc.logger.Errorw("failed to get feature", "error", err, "key", q.Key)
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	if feature == nil {
		return nil, errors.NewNotFoundError("feature not found", q.Key)
	}

	return dto.ToFeatureDTO(feature), nil
}

type ListFeaturesQuery struct {
	Status    string
	GroupName *string
	query.BaseFilter
}

type ListFeaturesResult struct {
	Features []*dto.FeatureDTO `json:"features"`
	Total    int64             `json:"total"`
}

type ListFeaturesUseCase struct {
	featureRepo catalog.FeatureRepository
	logger      logger.Interface
}

func NewListFeaturesUseCase(featureRepo catalog.FeatureRepository, logger logger.Interface) *ListFeaturesUseCase {
	return &ListFeaturesUseCase{featureRepo: featureRepo, logger: logger}
}

func (uc *ListFeaturesUseCase) Execute(ctx context.Context, q ListFeaturesQuery) (*ListFeaturesResult, error) {
	filter := catalog.FeatureFilter{GroupName: q.GroupName, BaseFilter: q.BaseFilter}
	if q.Status != "" {
		status := vo.EntityStatus(q.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	features, total, err := uc.featureRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list features", "error", err)
		return nil, fmt.Errorf("failed to list features: %w", err)
	}

	return &ListFeaturesResult{
		Features: lo.Map(features, func(f *catalog.Feature, _ int) *dto.FeatureDTO { return dto.ToFeatureDTO(f) }),
		Total:    total,
	}, nil
}
