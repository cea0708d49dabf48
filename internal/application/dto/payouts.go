package dto

import (
	"time"

	"payoutd/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// FeeResult is the outcome of a strategy fee estimation: the asset fees are
// denominated in for that backend, and the estimated amount.
type FeeResult struct {
	Asset  entities.Asset
	Amount decimal.Decimal
}

type DispatchPayoutsCommand struct {
	Now           time.Time
	Context       string
	BatchSize     int
	WorkerID      string
	LeaseDuration time.Duration
}

type DispatchPayoutsOutput struct {
	LeaseSkipped     bool
	Collected        int
	Dispatched       int
	ResolutionErrors int
	Unsupported      int
}

type ConfirmPayoutCompletionsCommand struct {
	Now           time.Time
	Context       string
	BatchSize     int
	WorkerID      string
	LeaseDuration time.Duration
	StaleAfter    time.Duration
}

type ConfirmPayoutCompletionsOutput struct {
	LeaseSkipped     bool
	Collected        int
	Completed        int
	StaleAlerted     int
	ResolutionErrors int
}

type EstimatePayoutFeeQuery struct {
	Asset entities.Asset
}

type EstimatePayoutFeeOutput struct {
	Fee FeeResult
}

type PayoutOverviewQuery struct {
	Context string
}

type PayoutOverviewRow struct {
	Context      string
	Status       string
	OrderCount   int64
	OldestAgeSec int64
}

type PayoutOverviewOutput struct {
	Rows []PayoutOverviewRow
}
