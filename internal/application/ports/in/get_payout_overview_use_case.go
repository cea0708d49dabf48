package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type GetPayoutOverviewUseCase interface {
	Execute(ctx context.Context, command dto.PayoutOverviewQuery) (dto.PayoutOverviewOutput, *apperrors.AppError)
}
