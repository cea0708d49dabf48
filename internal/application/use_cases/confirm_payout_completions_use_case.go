package use_cases

import (
	"context"
	"log"
	"strings"
	"time"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/application/strategies/payout"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
)

const confirmPayoutCompletionsTask = "confirm_payout_completions"

type confirmPayoutCompletionsUseCase struct {
	strategies *payout.Facade
	orderRepo  portsout.PayoutOrderRepository
	leaseStore portsout.TaskLeaseStore
	notifier   portsout.NotificationSink
	logger     *log.Logger
}

func NewConfirmPayoutCompletionsUseCase(
	strategies *payout.Facade,
	orderRepo portsout.PayoutOrderRepository,
	leaseStore portsout.TaskLeaseStore,
	notifier portsout.NotificationSink,
	logger *log.Logger,
) portsin.ConfirmPayoutCompletionsUseCase {
	return &confirmPayoutCompletionsUseCase{
		strategies: strategies,
		orderRepo:  orderRepo,
		leaseStore: leaseStore,
		notifier:   notifier,
		logger:     logger,
	}
}

func (u *confirmPayoutCompletionsUseCase) Execute(
	ctx context.Context,
	command dto.ConfirmPayoutCompletionsCommand,
) (dto.ConfirmPayoutCompletionsOutput, *apperrors.AppError) {
	if u.strategies == nil {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewInternal(
			"payout_strategy_facade_missing",
			"payout strategy facade is required",
			nil,
		)
	}
	if u.orderRepo == nil {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewInternal(
			"payout_order_repository_missing",
			"payout order repository is required",
			nil,
		)
	}
	if u.leaseStore == nil {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewInternal(
			"task_lease_store_missing",
			"task lease store is required",
			nil,
		)
	}
	payoutContext := strings.TrimSpace(command.Context)
	if payoutContext == "" {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewValidation(
			"confirm_context_invalid",
			"confirm payout context is required",
			nil,
		)
	}
	if command.BatchSize <= 0 {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewValidation(
			"confirm_batch_size_invalid",
			"confirm batch size must be greater than zero",
			map[string]any{"batch_size": command.BatchSize},
		)
	}
	workerID := strings.TrimSpace(command.WorkerID)
	if workerID == "" {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewValidation(
			"confirm_worker_id_invalid",
			"confirm worker id is required",
			nil,
		)
	}
	if command.LeaseDuration <= 0 {
		return dto.ConfirmPayoutCompletionsOutput{}, apperrors.NewValidation(
			"confirm_lease_duration_invalid",
			"confirm lease duration must be greater than zero",
			map[string]any{"lease_duration": command.LeaseDuration.String()},
		)
	}

	now := command.Now.UTC()
	if command.Now.IsZero() {
		now = time.Now().UTC()
	}

	task := confirmPayoutCompletionsTask + ":" + payoutContext
	acquired, appErr := u.leaseStore.Acquire(ctx, task, workerID, now.Add(command.LeaseDuration))
	if appErr != nil {
		return dto.ConfirmPayoutCompletionsOutput{}, appErr
	}
	if !acquired {
		return dto.ConfirmPayoutCompletionsOutput{LeaseSkipped: true}, nil
	}
	defer func() {
		if releaseErr := u.leaseStore.Release(ctx, task, workerID); releaseErr != nil {
			logfTo(u.logger, "confirm lease release failed task=%s worker=%s code=%s",
				task, workerID, releaseErr.Code)
		}
	}()

	orders, appErr := u.orderRepo.ListByStatusAndContext(
		ctx,
		valueobjects.PayoutOrderStatusPendingConfirmation,
		payoutContext,
		command.BatchSize,
	)
	if appErr != nil {
		return dto.ConfirmPayoutCompletionsOutput{}, appErr
	}

	output := dto.ConfirmPayoutCompletionsOutput{Collected: len(orders)}
	buckets, resolutionErrors := groupOrdersByStrategy(u.strategies, u.logger, orders)
	output.ResolutionErrors = resolutionErrors

	var wg conc.WaitGroup
	for _, bucket := range buckets {
		strategy := bucket.strategy
		bucketOrders := bucket.orders
		wg.Go(func() {
			if appErr := strategy.CheckPayoutCompletionData(ctx, bucketOrders); appErr != nil {
				logfTo(u.logger, "payout completion check rejected strategy=%s order_count=%d code=%s message=%s",
					strategy.Alias(), len(bucketOrders), appErr.Code, appErr.Message)
			}
		})
	}
	wg.Wait()

	for _, order := range orders {
		if order.Status == valueobjects.PayoutOrderStatusComplete {
			output.Completed++
			continue
		}
		if u.alertIfStale(ctx, order, now, command.StaleAfter) {
			output.StaleAlerted++
		}
	}

	logfTo(u.logger, "payout confirmation run finished context=%s collected=%d completed=%d stale_alerted=%d resolution_errors=%d",
		payoutContext, output.Collected, output.Completed, output.StaleAlerted, output.ResolutionErrors)

	return output, nil
}

// alertIfStale sends the one-shot operator alert for an order that has sat
// in pending_confirmation past the threshold. The marker is only persisted
// after a delivered alert, so a sink outage means a retry on the next run
// rather than a silently lost alert.
func (u *confirmPayoutCompletionsUseCase) alertIfStale(
	ctx context.Context,
	order *entities.PayoutOrder,
	now time.Time,
	staleAfter time.Duration,
) bool {
	if u.notifier == nil {
		return false
	}
	if order.StaleAlertedAt != nil || !order.IsConfirmationStale(now, staleAfter) {
		return false
	}

	_, alertErr := u.notifier.SendOperatorAlert(ctx, dto.OperatorAlertInput{
		AlertID: uuid.NewString(),
		Subject: "payout confirmation overdue",
		Message: "a dispatched payout has not reached finality within the expected window",
		Metadata: map[string]any{
			"order_id":      order.ID,
			"tx_id":         order.PayoutTxID,
			"dispatched_at": order.DispatchedAt.UTC().Format(time.RFC3339),
			"stale_after":   staleAfter.String(),
		},
	})
	if alertErr != nil {
		logfTo(u.logger, "stale payout alert delivery failed order_id=%s code=%s message=%s",
			order.ID, alertErr.Code, alertErr.Message)
		return false
	}

	order.MarkStaleAlerted(now)
	if appErr := u.orderRepo.Save(ctx, order); appErr != nil {
		logfTo(u.logger, "stale payout marker save failed order_id=%s code=%s message=%s",
			order.ID, appErr.Code, appErr.Message)
	}

	return true
}
