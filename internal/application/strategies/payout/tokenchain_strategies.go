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

// tokenchainPayoutGroupSize is smaller than the UTXO group size because the
// token ledger carries higher per-output overhead.
const tokenchainPayoutGroupSize = 10

// TokenchainTokenStrategy pays out tokens on the token-ledger chain with
// two-level grouping: partition by token identity, then chunk each partition.
// Before a group is dispatched, every light-wallet destination without an
// activation balance gets a corrective minimal-coin transfer.
type TokenchainTokenStrategy struct {
	gateway           portsout.TokenLedgerBackendGateway
	liquidityTransfer portsout.LiquidityTransferGateway
	orderRepo         portsout.PayoutOrderRepository
	assets            portsout.AssetResolution
	notifier          portsout.NotificationSink
	logger            *log.Logger
	feeAsset          feeAssetCache
}

var _ Strategy = (*TokenchainTokenStrategy)(nil)

func NewTokenchainTokenStrategy(
	gateway portsout.TokenLedgerBackendGateway,
	liquidityTransfer portsout.LiquidityTransferGateway,
	orderRepo portsout.PayoutOrderRepository,
	assets portsout.AssetResolution,
	notifier portsout.NotificationSink,
	logger *log.Logger,
) *TokenchainTokenStrategy {
	return &TokenchainTokenStrategy{
		gateway:           gateway,
		liquidityTransfer: liquidityTransfer,
		orderRepo:         orderRepo,
		assets:            assets,
		notifier:          notifier,
		logger:            logger,
	}
}

func (s *TokenchainTokenStrategy) Alias() valueobjects.PayoutStrategyAlias {
	return valueobjects.PayoutAliasTokenchainToken
}

func (s *TokenchainTokenStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainTokenchain)
	})
}

// EstimateFee reports zero: token-ledger transfers carry no transfer cost
// for the payout wallet.
func (s *TokenchainTokenStrategy) EstimateFee(ctx context.Context, _ entities.Asset) (dto.FeeResult, *apperrors.AppError) {
	asset, appErr := s.FeeAsset(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}

	return dto.FeeResult{Asset: asset, Amount: decimal.Zero}, nil
}

func (s *TokenchainTokenStrategy) DoPayout(ctx context.Context, payoutContext string, orders []*entities.PayoutOrder) *apperrors.AppError {
	for _, partition := range groupOrdersByToken(orders) {
		for _, group := range payoutGroups(partition.Orders, tokenchainPayoutGroupSize) {
			if len(group) == 0 {
				continue
			}

			logf(s.logger, "dispatching token payout group context=%s token=%s order_count=%d order_ids=%v",
				payoutContext, partition.TokenName, len(group), orderIDs(group))

			if appErr := s.ensureActivationBalances(ctx, group); appErr != nil {
				logf(s.logger, "token payout group activation check failed context=%s token=%s order_ids=%v code=%s message=%s",
					payoutContext, partition.TokenName, orderIDs(group), appErr.Code, appErr.Message)
				alertGroupFailure(ctx, s.logger, s.notifier, s.Alias(), orderIDs(group), appErr)
				continue
			}

			txID, appErr := s.gateway.SendTokenToMany(ctx, payoutContext, partition.TokenName, recipientsForOrders(group))
			if appErr != nil {
				logf(s.logger, "token payout group failed context=%s token=%s order_ids=%v code=%s message=%s",
					payoutContext, partition.TokenName, orderIDs(group), appErr.Code, appErr.Message)
				alertGroupFailure(ctx, s.logger, s.notifier, s.Alias(), orderIDs(group), appErr)
				continue
			}

			markGroupDispatched(ctx, s.logger, s.orderRepo, group, txID)
		}
	}

	return nil
}

func (s *TokenchainTokenStrategy) CheckPayoutCompletionData(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError {
	checkCompletions(ctx, s.logger, s.orderRepo, s.FeeAsset, s.gateway.GetPayoutCompletion, orders)
	return nil
}

// ensureActivationBalances tops up light-wallet destinations that hold no
// activation balance. The acquire-then-spend order matters: the corrective
// transfer must land before the group's token transaction is built.
func (s *TokenchainTokenStrategy) ensureActivationBalances(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError {
	for _, order := range orders {
		if !s.gateway.IsLightWalletAddress(order.DestinationAddress) {
			continue
		}

		balance, appErr := s.gateway.GetUtxoForAddress(ctx, order.DestinationAddress)
		if appErr != nil {
			return appErr
		}
		if balance.IsPositive() {
			continue
		}

		if _, appErr := s.liquidityTransfer.TransferMinimalCoin(ctx, order.DestinationAddress); appErr != nil {
			return appErr
		}
	}

	return nil
}

// TokenchainCoinStrategy exists to keep the alias set exhaustive: the
// token-ledger native coin is a liquidity-provision instrument here and is
// not payable. Every payout operation reports unsupported explicitly instead
// of silently doing nothing.
type TokenchainCoinStrategy struct {
	assets   portsout.AssetResolution
	feeAsset feeAssetCache
}

var _ Strategy = (*TokenchainCoinStrategy)(nil)

func NewTokenchainCoinStrategy(assets portsout.AssetResolution) *TokenchainCoinStrategy {
	return &TokenchainCoinStrategy{assets: assets}
}

func (s *TokenchainCoinStrategy) Alias() valueobjects.PayoutStrategyAlias {
	return valueobjects.PayoutAliasTokenchainCoin
}

func (s *TokenchainCoinStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainTokenchain)
	})
}

func (s *TokenchainCoinStrategy) EstimateFee(_ context.Context, _ entities.Asset) (dto.FeeResult, *apperrors.AppError) {
	return dto.FeeResult{}, s.unsupported("estimate_fee")
}

func (s *TokenchainCoinStrategy) DoPayout(_ context.Context, _ string, _ []*entities.PayoutOrder) *apperrors.AppError {
	return s.unsupported("do_payout")
}

func (s *TokenchainCoinStrategy) CheckPayoutCompletionData(_ context.Context, _ []*entities.PayoutOrder) *apperrors.AppError {
	return s.unsupported("check_payout_completion_data")
}

func (s *TokenchainCoinStrategy) unsupported(operation string) *apperrors.AppError {
	return apperrors.NewUnsupported(
		"payout_operation_not_supported",
		"operation not supported for this asset",
		map[string]any{"alias": s.Alias().String(), "operation": operation},
	)
}
