package liquidity

import (
	"context"
	"log"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

const (
	averageTransactionSizeVBytes = 180
	satoshisPerBitcoin           = 100_000_000
	bitcoinAmountPrecision       = 8
)

// BitcoinStrategy reports the tradable balance of the UTXO chain wallet. One
// wallet backs both coin and token questions here, so a single alias covers
// the whole chain.
type BitcoinStrategy struct {
	gateway  portsout.BitcoinBackendGateway
	assets   portsout.AssetResolution
	logger   *log.Logger
	feeAsset feeAssetCache
}

var _ Strategy = (*BitcoinStrategy)(nil)

func NewBitcoinStrategy(
	gateway portsout.BitcoinBackendGateway,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *BitcoinStrategy {
	return &BitcoinStrategy{gateway: gateway, assets: assets, logger: logger}
}

func (s *BitcoinStrategy) Alias() valueobjects.LiquidityStrategyAlias {
	return valueobjects.LiquidityAliasBitcoin
}

func (s *BitcoinStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainBitcoin)
	})
}

func (s *BitcoinStrategy) CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError) {
	available, appErr := s.gateway.GetTradableLiquidity(ctx)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	feeRate, appErr := s.gateway.GetCurrentFeeRate(ctx)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}
	feeAsset, appErr := s.FeeAsset(ctx)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	satoshiFee := feeRate.Mul(decimal.NewFromInt(averageTransactionSizeVBytes))
	fee := dto.FeeResult{
		Asset:  feeAsset,
		Amount: satoshiFee.Div(decimal.NewFromInt(satoshisPerBitcoin)).Round(bitcoinAmountPrecision),
	}

	return liquidityResult(request, available, fee), nil
}
