package dto

import (
	"payoutd/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// CheckLiquidityRequest asks whether enough tradable liquidity of the target
// asset exists before a sale or transfer commits funds.
type CheckLiquidityRequest struct {
	CorrelationID   string
	TargetAsset     entities.Asset
	RequestedAmount decimal.Decimal
}

type CheckLiquidityResult struct {
	TargetAsset     entities.Asset
	RequestedAmount decimal.Decimal
	AvailableAmount decimal.Decimal
	Sufficient      bool
	FeeEstimate     FeeResult
}

type CheckLiquidityCommand struct {
	Request CheckLiquidityRequest
}

type CheckLiquidityOutput struct {
	Result CheckLiquidityResult
}
