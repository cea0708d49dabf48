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

// TokenchainPoolPairStrategy answers liquidity questions for pooled-liquidity
// assets on the token-ledger chain. The pool pair is addressed by the asset
// name; its available side is what the backend reports for that pool.
type TokenchainPoolPairStrategy struct {
	gateway  portsout.TokenLedgerBackendGateway
	assets   portsout.AssetResolution
	logger   *log.Logger
	feeAsset feeAssetCache
}

var _ Strategy = (*TokenchainPoolPairStrategy)(nil)

func NewTokenchainPoolPairStrategy(
	gateway portsout.TokenLedgerBackendGateway,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *TokenchainPoolPairStrategy {
	return &TokenchainPoolPairStrategy{gateway: gateway, assets: assets, logger: logger}
}

func (s *TokenchainPoolPairStrategy) Alias() valueobjects.LiquidityStrategyAlias {
	return valueobjects.LiquidityAliasTokenchainPoolPair
}

func (s *TokenchainPoolPairStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainTokenchain)
	})
}

func (s *TokenchainPoolPairStrategy) CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError) {
	available, appErr := s.gateway.GetPoolPairLiquidity(ctx, request.TargetAsset.Name)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	fee, appErr := tokenchainZeroFee(ctx, s.FeeAsset)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	return liquidityResult(request, available, fee), nil
}

// TokenchainDefaultStrategy covers every non-pooled asset on the token-ledger
// chain, native coin and plain tokens alike.
type TokenchainDefaultStrategy struct {
	gateway  portsout.TokenLedgerBackendGateway
	assets   portsout.AssetResolution
	logger   *log.Logger
	feeAsset feeAssetCache
}

var _ Strategy = (*TokenchainDefaultStrategy)(nil)

func NewTokenchainDefaultStrategy(
	gateway portsout.TokenLedgerBackendGateway,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *TokenchainDefaultStrategy {
	return &TokenchainDefaultStrategy{gateway: gateway, assets: assets, logger: logger}
}

func (s *TokenchainDefaultStrategy) Alias() valueobjects.LiquidityStrategyAlias {
	return valueobjects.LiquidityAliasTokenchainDefault
}

func (s *TokenchainDefaultStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainTokenchain)
	})
}

func (s *TokenchainDefaultStrategy) CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError) {
	available, appErr := s.gateway.GetTokenLiquidity(ctx, request.TargetAsset.Name)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	fee, appErr := tokenchainZeroFee(ctx, s.FeeAsset)
	if appErr != nil {
		return dto.CheckLiquidityResult{}, appErr
	}

	return liquidityResult(request, available, fee), nil
}

func tokenchainZeroFee(
	ctx context.Context,
	feeAsset func(ctx context.Context) (entities.Asset, *apperrors.AppError),
) (dto.FeeResult, *apperrors.AppError) {
	asset, appErr := feeAsset(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}

	return dto.FeeResult{Asset: asset, Amount: decimal.Zero}, nil
}
