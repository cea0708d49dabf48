package in

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type GetHealthUseCase interface {
	Execute(ctx context.Context, command dto.GetHealthCommand) (dto.HealthOutput, *apperrors.AppError)
}
