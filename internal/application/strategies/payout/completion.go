package payout

import (
	"context"
	"log"
	"time"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

type completionFunc func(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError)

type feeAssetFunc func(ctx context.Context) (entities.Asset, *apperrors.AppError)

// checkCompletions drives still-pending orders to complete when the backend
// reports finality. Already-complete orders are skipped, so repeated calls
// never record a fee twice. A backend error for one order is logged and the
// rest are still checked.
func checkCompletions(
	ctx context.Context,
	logger *log.Logger,
	orderRepo portsout.PayoutOrderRepository,
	feeAsset feeAssetFunc,
	completion completionFunc,
	orders []*entities.PayoutOrder,
) {
	for _, order := range orders {
		if order.Status != valueobjects.PayoutOrderStatusPendingConfirmation {
			continue
		}

		result, appErr := completion(ctx, order.PayoutTxID)
		if appErr != nil {
			logf(logger, "payout completion check failed order_id=%s tx_id=%s code=%s message=%s",
				order.ID, order.PayoutTxID, appErr.Code, appErr.Message)
			continue
		}
		if !result.Complete {
			continue
		}

		asset, appErr := feeAsset(ctx)
		if appErr != nil {
			logf(logger, "payout fee asset resolution failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
			continue
		}

		if appErr := order.Complete(asset, result.FeeAmount, time.Now().UTC()); appErr != nil {
			logf(logger, "payout completion transition failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
			continue
		}
		if appErr := orderRepo.Save(ctx, order); appErr != nil {
			logf(logger, "payout order save failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
		}
	}
}

// markGroupDispatched assigns the shared transaction id to every order of a
// dispatched group and persists each transition.
func markGroupDispatched(
	ctx context.Context,
	logger *log.Logger,
	orderRepo portsout.PayoutOrderRepository,
	orders []*entities.PayoutOrder,
	txID string,
) {
	now := time.Now().UTC()
	for _, order := range orders {
		if appErr := order.PendingPayout(txID, now); appErr != nil {
			logf(logger, "payout dispatch transition failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
			continue
		}
		if appErr := orderRepo.Save(ctx, order); appErr != nil {
			logf(logger, "payout order save failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
		}
	}
}

func recipientsForOrders(orders []*entities.PayoutOrder) []dto.PayoutRecipient {
	recipients := make([]dto.PayoutRecipient, 0, len(orders))
	for _, order := range orders {
		recipients = append(recipients, dto.PayoutRecipient{
			OrderID: order.ID,
			Address: order.DestinationAddress,
			Amount:  order.Amount,
		})
	}
	return recipients
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// alertGroupFailure notifies the operator about a failed group. Sink
// failures are tolerated: alerting must never interrupt the payout run.
func alertGroupFailure(
	ctx context.Context,
	logger *log.Logger,
	notifier portsout.NotificationSink,
	alias valueobjects.PayoutStrategyAlias,
	ids []string,
	cause *apperrors.AppError,
) {
	if notifier == nil {
		return
	}

	_, alertErr := notifier.SendOperatorAlert(ctx, dto.OperatorAlertInput{
		Subject: "payout group dispatch failed",
		Message: "a payout group failed to dispatch and will be retried on the next run",
		Metadata: map[string]any{
			"strategy":  alias.String(),
			"order_ids": ids,
			"code":      cause.Code,
			"error":     cause.Message,
		},
	})
	if alertErr != nil {
		logf(logger, "operator alert delivery failed strategy=%s code=%s message=%s",
			alias, alertErr.Code, alertErr.Message)
	}
}
