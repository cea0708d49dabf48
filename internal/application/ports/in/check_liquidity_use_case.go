package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type CheckLiquidityUseCase interface {
	Execute(ctx context.Context, command dto.CheckLiquidityCommand) (dto.CheckLiquidityOutput, *apperrors.AppError)
}
