package usecases

import (
	"context"
	"fmt"

	"github.com/planwise-io/planwise/internal/domain/subscription"
	"github.com/planwise-io/planwise/internal/shared/errors"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

type ArchiveSubscriptionCommand struct {
	Key string
}

// ArchiveSubscriptionUseCase flips the archived flag. Archiving clears every
// feature override on the subscription; none of the dates are touched.
type ArchiveSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	overrideRepo     subscription.OverrideRepository
	logger           logger.Interface
}

func NewArchiveSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	overrideRepo subscription.OverrideRepository,
	logger logger.Interface,
) *ArchiveSubscriptionUseCase {
	return &ArchiveSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		overrideRepo:     overrideRepo,
		logger:           logger,
	}
}

func (uc *ArchiveSubscriptionUseCase) Execute(ctx context.Context, cmd ArchiveSubscriptionCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", cmd.Key)
	}

	if err := sub.Archive(); err != nil {
		return errors.NewDomainError("cannot archive subscription", err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to archive subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to archive subscription: %w", err)
	}

	if err := uc.overrideRepo.DeleteBySubscriptionID(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to clear overrides on archive", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to clear overrides: %w", err)
	}

	uc.logger.Infow("subscription archived", "key", cmd.Key)
	return nil
}

type UnarchiveSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewUnarchiveSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *UnarchiveSubscriptionUseCase {
	return &UnarchiveSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *UnarchiveSubscriptionUseCase) Execute(ctx context.Context, cmd ArchiveSubscriptionCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("subscription key is required")
	}

	sub, err := uc.subscriptionRepo.GetByKey(ctx, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return errors.NewNotFoundError("subscription not found", cmd.Key)
	}

	if err := sub.Unarchive(); err != nil {
		return errors.NewDomainError("cannot unarchive subscription", err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to unarchive subscription", "error", err, "key", cmd.Key)
		return fmt.Errorf("failed to unarchive subscription: %w", err)
	}

	uc.logger.Infow("subscription unarchived", "key", cmd.Key)
	return nil
}
