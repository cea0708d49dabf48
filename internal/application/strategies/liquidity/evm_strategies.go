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
	coinTransferGasUnits  = 21_000
	tokenTransferGasUnits = 100_000
)

// EvmCoinStrategy reports the native-coin balance of one account-based chain
// wallet. The chain is a constructor parameter, not a subtype.
type EvmCoinStrategy struct {
	alias      valueobjects.LiquidityStrategyAlias
	blockchain valueobjects.Blockchain
	gateway    portsout.EvmBackendGateway
	assets     portsout.AssetResolution
	logger     *log.Logger
	feeAsset   feeAssetCache
}

var _ Strategy = (*EvmCoinStrategy)(nil)

func NewEvmCoinStrategy(
	alias valueobjects.LiquidityStrategyAlias,
	blockchain valueobjects.Blockchain,
	gateway portsout.EvmBackendGateway,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *EvmCoinStrategy {
	return &EvmCoinStrategy{
		alias:      alias,
		blockchain: blockchain,
		gateway:    gateway,
		assets:     assets,
		logger:     logger,
	}
}

func (s *EvmCoinStrategy) Alias() valueobjects.LiquidityStrategyAlias {
	return s.alias
}

func (s *EvmCoinStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, s.blockchain)
	})
}

func (s *EvmCoinStrategy) CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError) {
	available, appErr := s.gateway.GetCoinLiquidity(ctx)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	fee, appErr := evmFeeEstimate(ctx, s.gateway, s.FeeAsset, coinTransferGasUnits)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	return liquidityResult(request, available, fee), nil
}

// EvmTokenStrategy reports the token balance of one account-based chain
// wallet. Fee estimates are still denominated in the chain's native coin.
type EvmTokenStrategy struct {
	alias      valueobjects.LiquidityStrategyAlias
	blockchain valueobjects.Blockchain
	gateway    portsout.EvmBackendGateway
	assets     portsout.AssetResolution
	logger     *log.Logger
	feeAsset   feeAssetCache
}

var _ Strategy = (*EvmTokenStrategy)(nil)

func NewEvmTokenStrategy(
	alias valueobjects.LiquidityStrategyAlias,
	blockchain valueobjects.Blockchain,
	gateway portsout.EvmBackendGateway,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *EvmTokenStrategy {
	return &EvmTokenStrategy{
		alias:      alias,
		blockchain: blockchain,
		gateway:    gateway,
		assets:     assets,
		logger:     logger,
	}
}

func (s *EvmTokenStrategy) Alias() valueobjects.LiquidityStrategyAlias {
	return s.alias
}

func (s *EvmTokenStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, s.blockchain)
	})
}

func (s *EvmTokenStrategy) CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError) {
	available, appErr := s.gateway.GetTokenLiquidity(ctx, request.TargetAsset)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	fee, appErr := evmFeeEstimate(ctx, s.gateway, s.FeeAsset, tokenTransferGasUnits)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	return liquidityResult(request, available, fee), nil
}

func evmFeeEstimate(
	ctx context.Context,
	gateway portsout.EvmBackendGateway,
	feeAsset func(ctx context.Context) (entities.Asset, *apperrors.AppError),
	gasUnits int64,
) (dto.FeeResult, *apperrors.AppError) {
	gasPrice, appErr := gateway.GetCurrentGasPrice(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}
	asset, appErr := feeAsset(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}

	return dto.FeeResult{
		Asset:  asset,
		Amount: gasPrice.Mul(decimal.NewFromInt(gasUnits)),
	}, nil
}
