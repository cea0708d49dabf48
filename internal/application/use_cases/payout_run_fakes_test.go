//go:build !integration

package use_cases

import (
	"context"
	"sync"
	"time"

	"payoutd/internal/application/dto"
	"payoutd/internal/application/strategies/payout"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

type fakeRunAssetResolution struct{}

func (f *fakeRunAssetResolution) GetNativeCoin(_ context.Context, blockchain valueobjects.Blockchain) (entities.Asset, *apperrors.AppError) {
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

func (f *fakeRunAssetResolution) GetAsset(_ context.Context, name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType) (entities.Asset, *apperrors.AppError) {
	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   valueobjects.AssetCategoryPlain,
	}, nil
}

type fakeRunOrderRepository struct {
	mu     sync.Mutex
	listed []*entities.PayoutOrder
	saved  []*entities.PayoutOrder
}

func (f *fakeRunOrderRepository) Save(_ context.Context, order *entities.PayoutOrder) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, order)
	return nil
}

func (f *fakeRunOrderRepository) ListByStatusAndContext(
	_ context.Context,
	status valueobjects.PayoutOrderStatus,
	payoutContext string,
	limit int,
) ([]*entities.PayoutOrder, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*entities.PayoutOrder, 0)
	for _, order := range f.listed {
		if order.Status != status || order.Context != payoutContext {
			continue
		}
		matched = append(matched, order)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

type fakeLeaseStore struct {
	mu       sync.Mutex
	denied   bool
	acquired []string
	released []string
}

func (f *fakeLeaseStore) Acquire(_ context.Context, task string, holder string, _ time.Time) (bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return false, nil
	}
	f.acquired = append(f.acquired, task+"/"+holder)
	return true, nil
}

func (f *fakeLeaseStore) Release(_ context.Context, task string, holder string) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, task+"/"+holder)
	return nil
}

type fakeRunNotificationSink struct {
	mu     sync.Mutex
	alerts []dto.OperatorAlertInput
	fail   bool
}

func (f *fakeRunNotificationSink) SendOperatorAlert(_ context.Context, input dto.OperatorAlertInput) (dto.OperatorAlertOutput, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return dto.OperatorAlertOutput{}, apperrors.NewBackend("alert_delivery_failed", "webhook unreachable", nil)
	}
	f.alerts = append(f.alerts, input)
	return dto.OperatorAlertOutput{StatusCode: 200}, nil
}

func (f *fakeRunNotificationSink) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

type fakeRunBitcoinGateway struct {
	mu          sync.Mutex
	sendCalls   int
	completions map[string]dto.PayoutCompletion
}

func (f *fakeRunBitcoinGateway) GetCurrentFeeRate(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(10), nil
}

func (f *fakeRunBitcoinGateway) SendUtxoToMany(_ context.Context, _ string, _ []dto.PayoutRecipient) (string, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	return "btc-tx-1", nil
}

func (f *fakeRunBitcoinGateway) GetPayoutCompletion(_ context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	return f.completions[txID], nil
}

func (f *fakeRunBitcoinGateway) GetTradableLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(10), nil
}

type fakeRunEvmGateway struct {
	mu          sync.Mutex
	sendCalls   int
	completions map[string]dto.PayoutCompletion
}

func (f *fakeRunEvmGateway) GetCurrentGasPrice(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.RequireFromString("0.000000001"), nil
}

func (f *fakeRunEvmGateway) SendNativeCoin(_ context.Context, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	return "evm-tx-" + recipient.OrderID, nil
}

func (f *fakeRunEvmGateway) SendToken(_ context.Context, _ entities.Asset, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	return "evm-tx-" + recipient.OrderID, nil
}

func (f *fakeRunEvmGateway) GetPayoutCompletion(_ context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	return f.completions[txID], nil
}

func (f *fakeRunEvmGateway) GetCoinLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(100), nil
}

func (f *fakeRunEvmGateway) GetTokenLiquidity(_ context.Context, _ entities.Asset) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(100), nil
}

type fakeRunTokenLedgerGateway struct{}

func (f *fakeRunTokenLedgerGateway) SendTokenToMany(_ context.Context, _ string, tokenName string, _ []dto.PayoutRecipient) (string, *apperrors.AppError) {
	return "tkc-tx-" + tokenName, nil
}

func (f *fakeRunTokenLedgerGateway) GetPayoutCompletion(_ context.Context, _ string) (dto.PayoutCompletion, *apperrors.AppError) {
	return dto.PayoutCompletion{}, nil
}

func (f *fakeRunTokenLedgerGateway) IsLightWalletAddress(_ string) bool {
	return false
}

func (f *fakeRunTokenLedgerGateway) GetUtxoForAddress(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return decimal.NewFromInt(1), nil
}

func (f *fakeRunTokenLedgerGateway) GetPoolPairLiquidity(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return decimal.Zero, nil
}

func (f *fakeRunTokenLedgerGateway) GetTokenLiquidity(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return decimal.Zero, nil
}

type fakeRunLiquidityTransferGateway struct{}

func (f *fakeRunLiquidityTransferGateway) TransferMinimalCoin(_ context.Context, address string) (string, *apperrors.AppError) {
	return "seed-tx-" + address, nil
}

type payoutRunFixture struct {
	facade      *payout.Facade
	orderRepo   *fakeRunOrderRepository
	leaseStore  *fakeLeaseStore
	notifier    *fakeRunNotificationSink
	bitcoin     *fakeRunBitcoinGateway
	evm         *fakeRunEvmGateway
	tokenLedger *fakeRunTokenLedgerGateway
}

func newPayoutRunFixture() *payoutRunFixture {
	assets := &fakeRunAssetResolution{}
	orderRepo := &fakeRunOrderRepository{}
	notifier := &fakeRunNotificationSink{}
	bitcoin := &fakeRunBitcoinGateway{completions: map[string]dto.PayoutCompletion{}}
	evm := &fakeRunEvmGateway{completions: map[string]dto.PayoutCompletion{}}
	tokenLedger := &fakeRunTokenLedgerGateway{}

	facade := payout.NewFacade(
		payout.NewBitcoinStrategy(bitcoin, orderRepo, assets, notifier, nil),
		payout.NewEvmCoinStrategy(valueobjects.PayoutAliasEthereumCoin, valueobjects.BlockchainEthereum, evm, orderRepo, assets, nil),
		payout.NewEvmTokenStrategy(valueobjects.PayoutAliasEthereumToken, valueobjects.BlockchainEthereum, evm, orderRepo, assets, nil),
		payout.NewEvmCoinStrategy(valueobjects.PayoutAliasBscCoin, valueobjects.BlockchainBsc, evm, orderRepo, assets, nil),
		payout.NewEvmTokenStrategy(valueobjects.PayoutAliasBscToken, valueobjects.BlockchainBsc, evm, orderRepo, assets, nil),
		payout.NewTokenchainCoinStrategy(assets),
		payout.NewTokenchainTokenStrategy(tokenLedger, &fakeRunLiquidityTransferGateway{}, orderRepo, assets, notifier, nil),
	)

	return &payoutRunFixture{
		facade:      facade,
		orderRepo:   orderRepo,
		leaseStore:  &fakeLeaseStore{},
		notifier:    notifier,
		bitcoin:     bitcoin,
		evm:         evm,
		tokenLedger: tokenLedger,
	}
}

func runTestAsset(name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType) entities.Asset {
	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   valueobjects.AssetCategoryPlain,
	}
}

func runTestOrder(id string, asset entities.Asset) *entities.PayoutOrder {
	order, appErr := entities.NewPayoutOrder(entities.NewPayoutOrderInput{
		ID:                 id,
		Context:            "refund",
		Asset:              asset,
		DestinationAddress: "dest-" + id,
		Amount:             decimal.NewFromInt(1),
	})
	if appErr != nil {
		panic(appErr.Message)
	}
	return &order
}
