package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type DispatchPayoutsUseCase interface {
	Execute(ctx context.Context, command dto.DispatchPayoutsCommand) (dto.DispatchPayoutsOutput, *apperrors.AppError)
}
