package entities

import (
	"strings"
	"time"

	"payoutd/internal/domain/policies"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// PayoutOrder is one unit of outbound work: send Amount of Asset to
// DestinationAddress within a caller-defined Context bucket.
//
// Lifecycle: created -> pending_confirmation (dispatch assigns the backend
// transaction id) -> complete (backend finality, fee recorded). A failed
// dispatch leaves the order in created; it is retried on the next run.
type PayoutOrder struct {
	ID                 string
	Context            string
	Asset              Asset
	DestinationAddress string
	Amount             decimal.Decimal
	Status             valueobjects.PayoutOrderStatus
	PayoutTxID         string
	FeeAsset           *Asset
	FeeAmount          *decimal.Decimal
	CreatedAt          time.Time
	DispatchedAt       *time.Time
	CompletedAt        *time.Time
	StaleAlertedAt     *time.Time
}

type NewPayoutOrderInput struct {
	ID                 string
	Context            string
	Asset              Asset
	DestinationAddress string
	Amount             decimal.Decimal
	CreatedAt          time.Time
}

func NewPayoutOrder(input NewPayoutOrderInput) (PayoutOrder, *apperrors.AppError) {
	if strings.TrimSpace(input.ID) == "" {
		return PayoutOrder{}, apperrors.NewInternal(
			"payout_order_id_missing",
			"payout order id is required",
			nil,
		)
	}
	if strings.TrimSpace(input.Context) == "" {
		return PayoutOrder{}, apperrors.NewValidation(
			"payout_order_context_missing",
			"payout order context is required",
			map[string]any{"order_id": input.ID},
		)
	}
	if strings.TrimSpace(input.DestinationAddress) == "" {
		return PayoutOrder{}, apperrors.NewValidation(
			"payout_order_destination_missing",
			"payout order destination address is required",
			map[string]any{"order_id": input.ID},
		)
	}
	if !input.Amount.IsPositive() {
		return PayoutOrder{}, apperrors.NewValidation(
			"payout_order_amount_invalid",
			"payout order amount must be greater than zero",
			map[string]any{"order_id": input.ID, "amount": input.Amount.String()},
		)
	}

	createdAt := input.CreatedAt.UTC()
	if input.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return PayoutOrder{
		ID:                 input.ID,
		Context:            input.Context,
		Asset:              input.Asset,
		DestinationAddress: strings.TrimSpace(input.DestinationAddress),
		Amount:             input.Amount,
		Status:             valueobjects.NewCreatedPayoutOrderStatus(),
		CreatedAt:          createdAt,
	}, nil
}

// PendingPayout transitions the order to pending_confirmation after a
// successful dispatch. The backend transaction id must be known; the
// invariant is that PayoutTxID is set exactly when the order is in
// pending_confirmation or complete.
func (o *PayoutOrder) PendingPayout(txID string, now time.Time) *apperrors.AppError {
	if o.Status != valueobjects.PayoutOrderStatusCreated {
		return apperrors.NewConflict(
			"payout_order_not_dispatchable",
			"payout order is not in created status",
			map[string]any{"order_id": o.ID, "status": o.Status.String()},
		)
	}
	if strings.TrimSpace(txID) == "" {
		return apperrors.NewInternal(
			"payout_tx_id_missing",
			"payout transaction id is required",
			map[string]any{"order_id": o.ID},
		)
	}

	dispatchedAt := now.UTC()
	o.Status = valueobjects.PayoutOrderStatusPendingConfirmation
	o.PayoutTxID = strings.TrimSpace(txID)
	o.DispatchedAt = &dispatchedAt

	return nil
}

// Complete transitions the order to complete and records the backend fee
// actually consumed. Fee fields are set exactly when the order is complete.
func (o *PayoutOrder) Complete(feeAsset Asset, feeAmount decimal.Decimal, now time.Time) *apperrors.AppError {
	if o.Status != valueobjects.PayoutOrderStatusPendingConfirmation {
		return apperrors.NewConflict(
			"payout_order_not_completable",
			"payout order is not in pending_confirmation status",
			map[string]any{"order_id": o.ID, "status": o.Status.String()},
		)
	}
	if feeAmount.IsNegative() {
		return apperrors.NewInternal(
			"payout_fee_amount_invalid",
			"payout fee amount must not be negative",
			map[string]any{"order_id": o.ID, "fee_amount": feeAmount.String()},
		)
	}

	completedAt := now.UTC()
	o.Status = valueobjects.PayoutOrderStatusComplete
	o.FeeAsset = &feeAsset
	o.FeeAmount = &feeAmount
	o.CompletedAt = &completedAt

	return nil
}

// IsConfirmationStale reports whether the order has sat in
// pending_confirmation for longer than the given threshold.
func (o *PayoutOrder) IsConfirmationStale(now time.Time, threshold time.Duration) bool {
	if o.Status != valueobjects.PayoutOrderStatusPendingConfirmation {
		return false
	}
	if o.DispatchedAt == nil || threshold <= 0 {
		return false
	}

	return now.After(policies.ResolveConfirmationStaleDeadline(*o.DispatchedAt, threshold))
}

// MarkStaleAlerted records that the operator alert for a stale confirmation
// has been sent, so the alert fires once per crossing.
func (o *PayoutOrder) MarkStaleAlerted(now time.Time) {
	alertedAt := now.UTC()
	o.StaleAlertedAt = &alertedAt
}
