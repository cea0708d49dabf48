//go:build !integration

package payout

import (
	"context"
	"sync"
	"sync/atomic"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

type fakeAssetResolution struct {
	nativeCoinCalls atomic.Int64
	delay           chan struct{}
	failNativeCoin  *apperrors.AppError
}

func (f *fakeAssetResolution) GetNativeCoin(_ context.Context, blockchain valueobjects.Blockchain) (entities.Asset, *apperrors.AppError) {
	f.nativeCoinCalls.Add(1)
	if f.delay != nil {
		<-f.delay
	}
	if f.failNativeCoin != nil {
		return entities.Asset{}, f.failNativeCoin
	}

	name := map[valueobjects.Blockchain]string{
		valueobjects.BlockchainBitcoin:    "BTC",
		valueobjects.BlockchainEthereum:   "ETH",
		valueobjects.BlockchainBsc:        "BNB",
		valueobjects.BlockchainTokenchain: "TKC",
	}[blockchain]

	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       valueobjects.AssetTypeCoin,
		Category:   valueobjects.AssetCategoryPlain,
	}, nil
}

func (f *fakeAssetResolution) GetAsset(_ context.Context, name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType) (entities.Asset, *apperrors.AppError) {
	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   valueobjects.AssetCategoryPlain,
	}, nil
}

type fakeOrderRepository struct {
	mu     sync.Mutex
	saved  []*entities.PayoutOrder
	listed []*entities.PayoutOrder
}

func (f *fakeOrderRepository) Save(_ context.Context, order *entities.PayoutOrder) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, order)
	return nil
}

func (f *fakeOrderRepository) ListByStatusAndContext(
	_ context.Context,
	status valueobjects.PayoutOrderStatus,
	payoutContext string,
	_ int,
) ([]*entities.PayoutOrder, *apperrors.AppError) {
	matched := make([]*entities.PayoutOrder, 0)
	for _, order := range f.listed {
		if order.Status == status && order.Context == payoutContext {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (f *fakeOrderRepository) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeNotificationSink struct {
	mu     sync.Mutex
	alerts []dto.OperatorAlertInput
}

func (f *fakeNotificationSink) SendOperatorAlert(_ context.Context, input dto.OperatorAlertInput) (dto.OperatorAlertOutput, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, input)
	return dto.OperatorAlertOutput{StatusCode: 200}, nil
}

func (f *fakeNotificationSink) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

type fakeBitcoinGateway struct {
	feeRate     decimal.Decimal
	sendCalls   [][]dto.PayoutRecipient
	failOnGroup int
	completions map[string]dto.PayoutCompletion
	finalityErr map[string]*apperrors.AppError
}

func (f *fakeBitcoinGateway) GetCurrentFeeRate(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return f.feeRate, nil
}

func (f *fakeBitcoinGateway) SendUtxoToMany(_ context.Context, _ string, recipients []dto.PayoutRecipient) (string, *apperrors.AppError) {
	call := len(f.sendCalls) + 1
	f.sendCalls = append(f.sendCalls, recipients)
	if f.failOnGroup == call {
		return "", apperrors.NewBackend("btc_send_failed", "sendmany rejected", nil)
	}
	return "btc-tx-" + string(rune('0'+call)), nil
}

func (f *fakeBitcoinGateway) GetPayoutCompletion(_ context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	if appErr, exists := f.finalityErr[txID]; exists {
		return dto.PayoutCompletion{}, appErr
	}
	return f.completions[txID], nil
}

func (f *fakeBitcoinGateway) GetTradableLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(10), nil
}

type fakeEvmGateway struct {
	gasPrice    decimal.Decimal
	coinSends   []dto.PayoutRecipient
	tokenSends  []dto.PayoutRecipient
	failOrderID string
	completions map[string]dto.PayoutCompletion
}

func (f *fakeEvmGateway) GetCurrentGasPrice(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return f.gasPrice, nil
}

func (f *fakeEvmGateway) SendNativeCoin(_ context.Context, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	if f.failOrderID == recipient.OrderID {
		return "", apperrors.NewBackend("evm_send_failed", "nonce too low", nil)
	}
	f.coinSends = append(f.coinSends, recipient)
	return "evm-tx-" + recipient.OrderID, nil
}

func (f *fakeEvmGateway) SendToken(_ context.Context, _ entities.Asset, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	if f.failOrderID == recipient.OrderID {
		return "", apperrors.NewBackend("evm_send_failed", "execution reverted", nil)
	}
	f.tokenSends = append(f.tokenSends, recipient)
	return "evm-tx-" + recipient.OrderID, nil
}

func (f *fakeEvmGateway) GetPayoutCompletion(_ context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	return f.completions[txID], nil
}

func (f *fakeEvmGateway) GetCoinLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(100), nil
}

func (f *fakeEvmGateway) GetTokenLiquidity(_ context.Context, _ entities.Asset) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(100), nil
}

type fakeTokenLedgerGateway struct {
	sendCalls      []tokenSendCall
	failOnToken    string
	lightAddresses map[string]bool
	utxoBalances   map[string]decimal.Decimal
	completions    map[string]dto.PayoutCompletion
	poolLiquidity  decimal.Decimal
	tokenLiquidity decimal.Decimal
}

type tokenSendCall struct {
	tokenName  string
	recipients []dto.PayoutRecipient
}

func (f *fakeTokenLedgerGateway) SendTokenToMany(_ context.Context, _ string, tokenName string, recipients []dto.PayoutRecipient) (string, *apperrors.AppError) {
	if f.failOnToken == tokenName {
		return "", apperrors.NewBackend("token_send_failed", "mempool rejected transaction", nil)
	}
	f.sendCalls = append(f.sendCalls, tokenSendCall{tokenName: tokenName, recipients: recipients})
	return "tkc-tx-" + tokenName, nil
}

func (f *fakeTokenLedgerGateway) GetPayoutCompletion(_ context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	return f.completions[txID], nil
}

func (f *fakeTokenLedgerGateway) IsLightWalletAddress(address string) bool {
	return f.lightAddresses[address]
}

func (f *fakeTokenLedgerGateway) GetUtxoForAddress(_ context.Context, address string) (decimal.Decimal, *apperrors.AppError) {
	return f.utxoBalances[address], nil
}

func (f *fakeTokenLedgerGateway) GetPoolPairLiquidity(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return f.poolLiquidity, nil
}

func (f *fakeTokenLedgerGateway) GetTokenLiquidity(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return f.tokenLiquidity, nil
}

type fakeLiquidityTransferGateway struct {
	transfers []string
}

func (f *fakeLiquidityTransferGateway) TransferMinimalCoin(_ context.Context, address string) (string, *apperrors.AppError) {
	f.transfers = append(f.transfers, address)
	return "seed-tx-" + address, nil
}

func testAsset(name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType) entities.Asset {
	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   valueobjects.AssetCategoryPlain,
	}
}

func testOrder(id string, asset entities.Asset, address string, amount string) *entities.PayoutOrder {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	order, appErr := entities.NewPayoutOrder(entities.NewPayoutOrderInput{
		ID:                 id,
		Context:            "refund",
		Asset:              asset,
		DestinationAddress: address,
		Amount:             parsed,
	})
	if appErr != nil {
		panic(appErr.Message)
	}
	return &order
}
