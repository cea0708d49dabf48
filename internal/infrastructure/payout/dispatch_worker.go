package payout

import (
	"context"
	"log"
	"time"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
)

// DispatchWorker drives the dispatch use case on a fixed interval. Mutual
// exclusion across replicas is the use case's concern; the worker only
// schedules runs.
type DispatchWorker struct {
	enabled       bool
	pollInterval  time.Duration
	payoutContext string
	batchSize     int
	workerID      string
	leaseDuration time.Duration
	useCase       portsin.DispatchPayoutsUseCase
	logger        *log.Logger
}

func NewDispatchWorker(
	enabled bool,
	pollInterval time.Duration,
	payoutContext string,
	batchSize int,
	workerID string,
	leaseDuration time.Duration,
	useCase portsin.DispatchPayoutsUseCase,
	logger *log.Logger,
) *DispatchWorker {
	return &DispatchWorker{
		enabled:       enabled,
		pollInterval:  pollInterval,
		payoutContext: payoutContext,
		batchSize:     batchSize,
		workerID:      workerID,
		leaseDuration: leaseDuration,
		useCase:       useCase,
		logger:        logger,
	}
}

func (w *DispatchWorker) Enabled() bool {
	return w != nil && w.enabled
}

func (w *DispatchWorker) Start(ctx context.Context) {
	if w == nil || !w.enabled || w.useCase == nil {
		return
	}

	w.logf(
		"payout dispatcher started worker_id=%s context=%s poll_interval=%s batch_size=%d lease_duration=%s",
		w.workerID,
		w.payoutContext,
		w.pollInterval,
		w.batchSize,
		w.leaseDuration,
	)

	w.runCycle(ctx)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logf("payout dispatcher stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *DispatchWorker) runCycle(ctx context.Context) {
	startedAt := time.Now().UTC()
	output, appErr := w.useCase.Execute(ctx, dto.DispatchPayoutsCommand{
		Now:           startedAt,
		Context:       w.payoutContext,
		BatchSize:     w.batchSize,
		WorkerID:      w.workerID,
		LeaseDuration: w.leaseDuration,
	})
	if appErr != nil {
		w.logf(
			"payout dispatch cycle failed code=%s message=%s details=%v",
			appErr.Code,
			appErr.Message,
			appErr.Details,
		)
		return
	}

	if output.LeaseSkipped {
		w.logf("payout dispatch cycle skipped worker_id=%s context=%s", w.workerID, w.payoutContext)
		return
	}

	w.logf(
		"payout dispatch cycle completed worker_id=%s context=%s collected=%d dispatched=%d resolution_errors=%d unsupported=%d latency_ms=%d",
		w.workerID,
		w.payoutContext,
		output.Collected,
		output.Dispatched,
		output.ResolutionErrors,
		output.Unsupported,
		time.Since(startedAt).Milliseconds(),
	)
}

func (w *DispatchWorker) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf(format, args...)
}
