package payout

import (
	"context"
	"log"
	"time"

	"payoutd/internal/application/dto"
	portsin "payoutd/internal/application/ports/in"
)

// ConfirmWorker polls pending orders for backend finality and raises stale
// alerts for dispatches that never confirm.
type ConfirmWorker struct {
	enabled       bool
	pollInterval  time.Duration
	payoutContext string
	batchSize     int
	workerID      string
	leaseDuration time.Duration
	staleAfter    time.Duration
	useCase       portsin.ConfirmPayoutCompletionsUseCase
	logger        *log.Logger
}

func NewConfirmWorker(
	enabled bool,
	pollInterval time.Duration,
	payoutContext string,
	batchSize int,
	workerID string,
	leaseDuration time.Duration,
	staleAfter time.Duration,
	useCase portsin.ConfirmPayoutCompletionsUseCase,
	logger *log.Logger,
) *ConfirmWorker {
	return &ConfirmWorker{
		enabled:       enabled,
		pollInterval:  pollInterval,
		payoutContext: payoutContext,
		batchSize:     batchSize,
		workerID:      workerID,
		leaseDuration: leaseDuration,
		staleAfter:    staleAfter,
		useCase:       useCase,
		logger:        logger,
	}
}

func (w *ConfirmWorker) Enabled() bool {
	return w != nil && w.enabled
}

func (w *ConfirmWorker) Start(ctx context.Context) {
	if w == nil || !w.enabled || w.useCase == nil {
		return
	}

	w.logf(
		"payout confirmer started worker_id=%s context=%s poll_interval=%s batch_size=%d stale_after=%s",
		w.workerID,
		w.payoutContext,
		w.pollInterval,
		w.batchSize,
		w.staleAfter,
	)

	w.runCycle(ctx)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logf("payout confirmer stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *ConfirmWorker) runCycle(ctx context.Context) {
	startedAt := time.Now().UTC()
	output, appErr := w.useCase.Execute(ctx, dto.ConfirmPayoutCompletionsCommand{
		Now:           startedAt,
		Context:       w.payoutContext,
		BatchSize:     w.batchSize,
		WorkerID:      w.workerID,
		LeaseDuration: w.leaseDuration,
		StaleAfter:    w.staleAfter,
	})
	if appErr != nil {
		w.logf(
			"payout confirm cycle failed code=%s message=%s details=%v",
			appErr.Code,
			appErr.Message,
			appErr.Details,
		)
		return
	}

	if output.LeaseSkipped {
		w.logf("payout confirm cycle skipped worker_id=%s context=%s", w.workerID, w.payoutContext)
		return
	}

	w.logf(
		"payout confirm cycle completed worker_id=%s context=%s collected=%d completed=%d stale_alerted=%d resolution_errors=%d latency_ms=%d",
		w.workerID,
		w.payoutContext,
		output.Collected,
		output.Completed,
		output.StaleAlerted,
		output.ResolutionErrors,
		time.Since(startedAt).Milliseconds(),
	)
}

func (w *ConfirmWorker) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf(format, args...)
}
