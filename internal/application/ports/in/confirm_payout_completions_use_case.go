package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type ConfirmPayoutCompletionsUseCase interface {
	Execute(ctx context.Context, command dto.ConfirmPayoutCompletionsCommand) (dto.ConfirmPayoutCompletionsOutput, *apperrors.AppError)
}
