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

const (
	// averageTransactionSizeVBytes drives the fee estimate: fee-rate times
	// an average payout transaction size.
	averageTransactionSizeVBytes = 180
	bitcoinPayoutGroupSize       = 100
	satoshisPerBitcoin           = 100_000_000
	bitcoinAmountPrecision       = 8
)

// BitcoinStrategy pays out over the UTXO chain. Orders are chunked into
// fixed-size groups to bound transaction size; each group becomes one
// send-to-many transaction. Partial batch completion is expected behavior.
type BitcoinStrategy struct {
	gateway   portsout.BitcoinBackendGateway
	orderRepo portsout.PayoutOrderRepository
	assets    portsout.AssetResolution
	notifier  portsout.NotificationSink
	logger    *log.Logger
	feeAsset  feeAssetCache
}

var _ Strategy = (*BitcoinStrategy)(nil)

func NewBitcoinStrategy(
	gateway portsout.BitcoinBackendGateway,
	orderRepo portsout.PayoutOrderRepository,
	assets portsout.AssetResolution,
	notifier portsout.NotificationSink,
	logger *log.Logger,
) *BitcoinStrategy {
	return &BitcoinStrategy{
		gateway:   gateway,
		orderRepo: orderRepo,
		assets:    assets,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *BitcoinStrategy) Alias() valueobjects.PayoutStrategyAlias {
	return valueobjects.PayoutAliasBitcoin
}

func (s *BitcoinStrategy) FeeAsset(ctx context.Context) (entities.Asset, *apperrors.AppError) {
	return s.feeAsset.resolve(ctx, func(ctx context.Context) (entities.Asset, *apperrors.AppError) {
		return s.assets.GetNativeCoin(ctx, valueobjects.BlockchainBitcoin)
	})
}

func (s *BitcoinStrategy) EstimateFee(ctx context.Context, _ entities.Asset) (dto.FeeResult, *apperrors.AppError) {
	feeRate, appErr := s.gateway.GetCurrentFeeRate(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}
	asset, appErr := s.FeeAsset(ctx)
	if appErr != nil {
		return dto.FeeResult{}, appErr
	}

	satoshiFee := feeRate.Mul(decimal.NewFromInt(averageTransactionSizeVBytes))
	btcFee := satoshiFee.Div(decimal.NewFromInt(satoshisPerBitcoin)).Round(bitcoinAmountPrecision)

	return dto.FeeResult{Asset: asset, Amount: btcFee}, nil
}

func (s *BitcoinStrategy) DoPayout(ctx context.Context, payoutContext string, orders []*entities.PayoutOrder) *apperrors.AppError {
	for _, group := range payoutGroups(orders, bitcoinPayoutGroupSize) {
		if len(group) == 0 {
			continue
		}

		logf(s.logger, "dispatching bitcoin payout group context=%s order_count=%d order_ids=%v",
			payoutContext, len(group), orderIDs(group))

		txID, appErr := s.gateway.SendUtxoToMany(ctx, payoutContext, recipientsForOrders(group))
		if appErr != nil {
			logf(s.logger, "bitcoin payout group failed context=%s order_ids=%v code=%s message=%s",
				payoutContext, orderIDs(group), appErr.Code, appErr.Message)
			alertGroupFailure(ctx, s.logger, s.notifier, s.Alias(), orderIDs(group), appErr)
			continue
		}

		markGroupDispatched(ctx, s.logger, s.orderRepo, group, txID)
	}

	return nil
}

func (s *BitcoinStrategy) CheckPayoutCompletionData(ctx context.Context, orders []*entities.PayoutOrder) *apperrors.AppError {
	checkCompletions(ctx, s.logger, s.orderRepo, s.FeeAsset, s.gateway.GetPayoutCompletion, orders)
	return nil
}
