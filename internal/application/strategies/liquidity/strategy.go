package liquidity

import (
	"context"
	"sync"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// Strategy answers whether enough tradable liquidity of one asset class is
// available before funds are committed. One implementation per alias; the
// check is read-only and never reserves anything.
type Strategy interface {
	Alias() valueobjects.LiquidityStrategyAlias
	FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError)
	CheckLiquidity(ctx context.Context, request dto.CheckLiquidityRequest) (dto.CheckLiquidityResult, *apperrors.AppError)
}

// feeAssetCache memoizes the strategy's fee asset for its lifetime. One
// computation serves all concurrent first callers; a failed lookup is not
// cached and the next caller retries.
type feeAssetCache struct {
	mu    sync.Mutex
	asset *entities.Asset
}

func (c *feeAssetCache) resolve(
	ctx context.Context,
	lookup func(ctx context.Context) (entities.Asset, *apperrors.AppError),
) (entities.Asset, *apperrors.AppError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.asset != nil {
		return *c.asset, nil
	}

	asset, appErr := lookup(ctx)
	if appErr != nil {
		return entities.Asset{}, appErr
	}

	c.asset = &asset
	return asset, nil
}

func liquidityResult(request dto.CheckLiquidityRequest, available decimal.Decimal, fee dto.FeeResult) dto.CheckLiquidityResult {
	return dto.CheckLiquidityResult{
		TargetAsset:     request.TargetAsset,
		RequestedAmount: request.RequestedAmount,
		AvailableAmount: available,
		Sufficient:      available.GreaterThanOrEqual(request.RequestedAmount),
		FeeEstimate:     fee,
	}
}
