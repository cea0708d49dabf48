package payout

import (
	"context"
	"sync"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// Strategy is the backend-specific payout contract for one
// (chain, asset-type) combination.
//
// DoPayout never propagates per-order or per-group backend failures: those
// are logged and skipped so one bad order cannot block unrelated progress.
// It returns an error only when the strategy does not support payout at all.
type Strategy interface {
	Alias() valueobjects.PayoutStrategyAlias
	FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError)
	EstimateFee(ctx context.Context, asset entities.Asset) (dto.FeeResult, *apperrors.AppError)
	DoPayout(ctx context.Context, payoutContext string, orders []*entities.PayoutOrder) *apperrors.AppError
	CheckPayoutCompletionData(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError
}

// feeAssetCache memoizes the strategy's fee asset for its lifetime. The
// underlying lookup may be an expensive external call, so exactly one
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
