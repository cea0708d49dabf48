package valueobjects

import apperrors "payoutd/internal/shared_kernel/errors"

type PayoutOrderStatus string

const (
	PayoutOrderStatusCreated             PayoutOrderStatus = "created"
	PayoutOrderStatusPendingConfirmation PayoutOrderStatus = "pending_confirmation"
	PayoutOrderStatusComplete            PayoutOrderStatus = "complete"
)

func NewCreatedPayoutOrderStatus() PayoutOrderStatus {
	return PayoutOrderStatusCreated
}

func ParsePayoutOrderStatus(raw string) (PayoutOrderStatus, *apperrors.AppError) {
	switch raw {
	case string(PayoutOrderStatusCreated):
		return PayoutOrderStatusCreated, nil
	case string(PayoutOrderStatusPendingConfirmation):
		return PayoutOrderStatusPendingConfirmation, nil
	case string(PayoutOrderStatusComplete):
		return PayoutOrderStatusComplete, nil
	default:
		return "", apperrors.NewInternal(
			"payout_order_status_invalid",
			"payout order status is invalid",
			map[string]any{"status": raw},
		)
	}
}

func (s PayoutOrderStatus) String() string {
	return string(s)
}
