package out

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type NotificationSink interface {
	SendOperatorAlert(
		ctx context.Context,
		input dto.OperatorAlertInput,
	) (dto.OperatorAlertOutput, *apperrors.AppError)
}
