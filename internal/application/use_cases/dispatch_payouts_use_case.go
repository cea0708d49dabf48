package use_cases

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/application/strategies/payout"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/sourcegraph/conc"
)

const dispatchPayoutsTask = "dispatch_payouts"

type dispatchPayoutsUseCase struct {
	strategies *payout.Facade
	orderRepo  portsout.PayoutOrderRepository
	leaseStore portsout.TaskLeaseStore
	logger     *log.Logger
}

func NewDispatchPayoutsUseCase(
	strategies *payout.Facade,
	orderRepo portsout.PayoutOrderRepository,
	leaseStore portsout.TaskLeaseStore,
	logger *log.Logger,
) portsin.DispatchPayoutsUseCase {
	return &dispatchPayoutsUseCase{
		strategies: strategies,
		orderRepo:  orderRepo,
		leaseStore: leaseStore,
		logger:     logger,
	}
}

func (u *dispatchPayoutsUseCase) Execute(
	ctx context.Context,
	command dto.DispatchPayoutsCommand,
) (dto.DispatchPayoutsOutput, *apperrors.AppError) {
	if u.strategies == nil {
		return dto.DispatchPayoutsOutput{}, apperrors.NewInternal(
			"payout_strategy_facade_missing",
			"payout strategy facade is required",
			nil,
		)
	}
	if u.orderRepo == nil {
		return dto.DispatchPayoutsOutput{}, apperrors.NewInternal(
			"payout_order_repository_missing",
			"payout order repository is required",
			nil,
		)
	}
	if u.leaseStore == nil {
		return dto.DispatchPayoutsOutput{}, apperrors.NewInternal(
			"task_lease_store_missing",
			"task lease store is required",
			nil,
		)
	}
	payoutContext := strings.TrimSpace(command.Context)
	if payoutContext == "" {
		return dto.DispatchPayoutsOutput{}, apperrors.NewValidation(
			"dispatch_context_invalid",
			"dispatch payout context is required",
			nil,
		)
	}
	if command.BatchSize <= 0 {
		return dto.DispatchPayoutsOutput{}, apperrors.NewValidation(
			"dispatch_batch_size_invalid",
			"dispatch batch size must be greater than zero",
			map[string]any{"batch_size": command.BatchSize},
		)
	}
	workerID := strings.TrimSpace(command.WorkerID)
	if workerID == "" {
		return dto.DispatchPayoutsOutput{}, apperrors.NewValidation(
			"dispatch_worker_id_invalid",
			"dispatch worker id is required",
			nil,
		)
	}
	if command.LeaseDuration <= 0 {
		return dto.DispatchPayoutsOutput{}, apperrors.NewValidation(
			"dispatch_lease_duration_invalid",
			"dispatch lease duration must be greater than zero",
			map[string]any{"lease_duration": command.LeaseDuration.String()},
		)
	}

	now := command.Now.UTC()
	if command.Now.IsZero() {
		now = time.Now().UTC()
	}

	task := dispatchPayoutsTask + ":" + payoutContext
	acquired, appErr := u.leaseStore.Acquire(ctx, task, workerID, now.Add(command.LeaseDuration))
	if appErr != nil {
		return dto.DispatchPayoutsOutput{}, appErr
	}
	if !acquired {
		return dto.DispatchPayoutsOutput{LeaseSkipped: true}, nil
	}
	defer func() {
		if releaseErr := u.leaseStore.Release(ctx, task, workerID); releaseErr != nil {
			logfTo(u.logger, "dispatch lease release failed task=%s worker=%s code=%s",
				task, workerID, releaseErr.Code)
		}
	}()

	orders, appErr := u.orderRepo.ListByStatusAndContext(
		ctx,
		valueobjects.PayoutOrderStatusCreated,
		payoutContext,
		command.BatchSize,
	)
	if appErr != nil {
		return dto.DispatchPayoutsOutput{}, appErr
	}

	output := dto.DispatchPayoutsOutput{Collected: len(orders)}
	buckets, resolutionErrors := groupOrdersByStrategy(u.strategies, u.logger, orders)
	output.ResolutionErrors = resolutionErrors

	// Strategies talk to independent backends, so they run concurrently.
	// Orders within one strategy stay sequential; ordering inside a backend
	// matters there (grouping, nonce use).
	var wg conc.WaitGroup
	var mu sync.Mutex
	for _, bucket := range buckets {
		strategy := bucket.strategy
		bucketOrders := bucket.orders
		wg.Go(func() {
			appErr := strategy.DoPayout(ctx, payoutContext, bucketOrders)
			if appErr == nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if appErr.IsType(apperrors.TypeUnsupported) {
				output.Unsupported += len(bucketOrders)
			} else {
				output.ResolutionErrors += len(bucketOrders)
			}
			logfTo(u.logger, "payout strategy run rejected strategy=%s order_count=%d code=%s message=%s",
				strategy.Alias(), len(bucketOrders), appErr.Code, appErr.Message)
		})
	}
	wg.Wait()

	for _, order := range orders {
		if order.Status == valueobjects.PayoutOrderStatusPendingConfirmation {
			output.Dispatched++
		}
	}

	logfTo(u.logger, "payout dispatch run finished context=%s collected=%d dispatched=%d resolution_errors=%d unsupported=%d",
		payoutContext, output.Collected, output.Dispatched, output.ResolutionErrors, output.Unsupported)

	return output, nil
}

type strategyBucket struct {
	strategy payout.Strategy
	orders   []*entities.PayoutOrder
}

// groupOrdersByStrategy partitions collected orders by their resolved
// strategy, preserving collection order within each bucket. An order whose
// asset does not classify is counted and skipped; it keeps its status and
// does not poison the rest of the batch.
func groupOrdersByStrategy(
	facade *payout.Facade,
	logger *log.Logger,
	orders []*entities.PayoutOrder,
) ([]strategyBucket, int) {
	indexByAlias := make(map[valueobjects.PayoutStrategyAlias]int)
	buckets := make([]strategyBucket, 0)
	resolutionErrors := 0

	for _, order := range orders {
		strategy, appErr := facade.ByAsset(order.Asset)
		if appErr != nil {
			resolutionErrors++
			logfTo(logger, "payout order resolution failed order_id=%s asset=%s code=%s message=%s",
				order.ID, order.Asset.UniqueName(), appErr.Code, appErr.Message)
			continue
		}

		index, exists := indexByAlias[strategy.Alias()]
		if !exists {
			index = len(buckets)
			indexByAlias[strategy.Alias()] = index
			buckets = append(buckets, strategyBucket{strategy: strategy})
		}
		buckets[index].orders = append(buckets[index].orders, order)
	}

	return buckets, resolutionErrors
}

func logfTo(logger *log.Logger, format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}
