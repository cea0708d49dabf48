package payout

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

// Gas consumption estimates per dispatched transaction, in gas units.
const (
	coinTransferGasUnits  = 21_000
	tokenTransferGasUnits = 100_000
)

// EvmCoinStrategy pays out the native coin of one account-based chain. The
// chain is a constructor parameter, not a subtype: the same strategy type
// serves every EVM chain with its own injected backend gateway.
//
// Dispatch is per-order and sequential; each order is wrapped individually
// so one failing order does not block the others.
type EvmCoinStrategy struct {
	alias      valueobjects.PayoutStrategyAlias
	blockchain valueobjects.Blockchain
	gateway    portsout.EvmBackendGateway
	orderRepo  portsout.PayoutOrderRepository
	assets     portsout.AssetResolution
	logger     *log.Logger
	feeAsset   feeAssetCache
}

var _ Strategy = (*EvmCoinStrategy)(nil)

func NewEvmCoinStrategy(
	alias valueobjects.PayoutStrategyAlias,
	blockchain valueobjects.Blockchain,
	gateway portsout.EvmBackendGateway,
	orderRepo portsout.PayoutOrderRepository,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *EvmCoinStrategy {
	return &EvmCoinStrategy{
		alias:      alias,
		blockchain: blockchain,
		gateway:    gateway,
		orderRepo:  orderRepo,
		assets:     assets,
		logger:     logger,
	}
}

func (s *EvmCoinStrategy) Alias() valueobjects.PayoutStrategyAlias {
	return s.alias
}

func (s *EvmCoinStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, s.blockchain)
	})
}

func (s *EvmCoinStrategy) EstimateFee(ctx context.Context, _ entities.Asset) (dto.FeeResult, *apperrors.AppError) {
	return evmEstimateFee(ctx, s.gateway, s.FeeAsset, coinTransferGasUnits)
}

func (s *EvmCoinStrategy) DoPayout(ctx context.Context, _ string, orders []*entities.PayoutOrder) *apperrors.AppError {
	evmDoPayout(ctx, s.logger, s.orderRepo, orders, func(ctx context.Context, order *entities.PayoutOrder) (string, *apperrors.AppError) {
		return s.gateway.SendNativeCoin(ctx, dto.PayoutRecipient{
			OrderID: order.ID,
			Address: order.DestinationAddress,
			Amount:  order.Amount,
		})
	})
	return nil
}

func (s *EvmCoinStrategy) CheckPayoutCompletionData(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError {
	checkCompletions(ctx, s.logger, s.orderRepo, s.FeeAsset, s.gateway.GetPayoutCompletion, orders)
	return nil
}

// EvmTokenStrategy pays out tokens on one account-based chain. Fees are
// still denominated in the chain's native coin.
type EvmTokenStrategy struct {
	alias      valueobjects.PayoutStrategyAlias
	blockchain valueobjects.Blockchain
	gateway    portsout.EvmBackendGateway
	orderRepo  portsout.PayoutOrderRepository
	assets     portsout.AssetResolution
	logger     *log.Logger
	feeAsset   feeAssetCache
}

var _ Strategy = (*EvmTokenStrategy)(nil)

func NewEvmTokenStrategy(
	alias valueobjects.PayoutStrategyAlias,
	blockchain valueobjects.Blockchain,
	gateway portsout.EvmBackendGateway,
	orderRepo portsout.PayoutOrderRepository,
	assets portsout.AssetResolution,
	logger *log.Logger,
) *EvmTokenStrategy {
	return &EvmTokenStrategy{
		alias:      alias,
		blockchain: blockchain,
		gateway:    gateway,
		orderRepo:  orderRepo,
		assets:     assets,
		logger:     logger,
	}
}

func (s *EvmTokenStrategy) Alias() valueobjects.PayoutStrategyAlias {
	return s.alias
}

func (s *EvmTokenStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, s.blockchain)
	})
}

func (s *EvmTokenStrategy) EstimateFee(ctx context.Context, _ entities.Asset) (dto.FeeResult, *apperrors.AppError) {
	return evmEstimateFee(ctx, s.gateway, s.FeeAsset, tokenTransferGasUnits)
}

func (s *EvmTokenStrategy) DoPayout(ctx context.Context, _ string, orders []*entities.PayoutOrder) *apperrors.AppError {
	evmDoPayout(ctx, s.logger, s.orderRepo, orders, func(ctx context.Context, order *entities.PayoutOrder) (string, *apperrors.AppError) {
		return s.gateway.SendToken(ctx, order.Asset, dto.PayoutRecipient{
			OrderID: order.ID,
			Address: order.DestinationAddress,
			Amount:  order.Amount,
		})
	})
	return nil
}

func (s *EvmTokenStrategy) CheckPayoutCompletionData(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError {
	checkCompletions(ctx, s.logger, s.orderRepo, s.FeeAsset, s.gateway.GetPayoutCompletion, orders)
	return nil
}

func evmEstimateFee(
	ctx context.Context,
	gateway portsout.EvmBackendGateway,
	feeAsset feeAssetFunc,
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

type evmDispatchFunc func(ctx context.Context, order *entities.PayoutOrder) (string, *apperrors.AppError)

func evmDoPayout(
	ctx context.Context,
	logger *log.Logger,
	orderRepo portsout.PayoutOrderRepository,
	orders []*entities.PayoutOrder,
	dispatch evmDispatchFunc,
) {
	for _, order := range orders {
		txID, appErr := dispatch(ctx, order)
		if appErr != nil {
			logf(logger, "evm payout order failed order_id=%s code=%s message=%s",
				order.ID, appErr.Code, appErr.Message)
			continue
		}

		markGroupDispatched(ctx, logger, orderRepo, []*entities.PayoutOrder{order}, txID)
	}
}
