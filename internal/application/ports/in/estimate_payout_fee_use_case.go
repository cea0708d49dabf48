package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type EstimatePayoutFeeUseCase interface {
	Execute(ctx context.Context, command dto.EstimatePayoutFeeQuery) (dto.EstimatePayoutFeeOutput, *apperrors.AppError)
}
