package out

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type PayoutOverviewReadModel interface {
	Overview(ctx context.Context, query dto.PayoutOverviewQuery) ([]dto.PayoutOverviewRow, *apperrors.AppError)
}
