package dto

import "github.com/shopspring/decimal"

// PayoutRecipient is one destination in a broadcast transfer. Send-to-many
// backends take a list; per-order backends take exactly one.
type PayoutRecipient struct {
	OrderID string
	Address string
	Amount  decimal.Decimal
}

// PayoutCompletion is the backend's answer for a dispatched transaction:
// whether it reached finality and, if so, the fee actually consumed in the
// backend's native fee asset.
type PayoutCompletion struct {
	Complete  bool
	FeeAmount decimal.Decimal
}
