package out

import (
	"context"

	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// PayoutOrderRepository persists payout orders. The core mutates order state
// in memory and hands the order back here; it never owns order storage.
type PayoutOrderRepository interface {
	Save(ctx context.Context, order *entities.PayoutOrder) *apperrors.AppError
	ListByStatusAndContext(
		ctx context.Context,
		status valueobjects.PayoutOrderStatus,
		payoutContext string,
		limit int,
	) ([]*entities.PayoutOrder, *apperrors.AppError)
}
