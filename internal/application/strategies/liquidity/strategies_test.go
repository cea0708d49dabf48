//go:build !integration

package liquidity

import (
	"context"
	"testing"

	valueobjects "payoutd/internal/domain/value_objects"

	"github.com/shopspring/decimal"
)

func TestBitcoinStrategyReportsSufficiency(t *testing.T) {
	gateway := &fakeBitcoinGateway{
		tradable: decimal.RequireFromString("1.5"),
		feeRate:  decimal.NewFromInt(50),
	}
	strategy := NewBitcoinStrategy(gateway, &fakeAssetResolution{}, nil)
	btc := testAsset("BTC", valueobjects.BlockchainBitcoin, valueobjects.AssetTypeCoin, valueobjects.AssetCategoryPlain)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(btc, "1.2"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !result.Sufficient {
		t.Fatalf("expected sufficient liquidity")
	}
	if !result.AvailableAmount.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected available amount %s", result.AvailableAmount)
	}
	// 50 sat/vB * 180 vBytes = 9000 sat = 0.00009 BTC.
	if expected := decimal.RequireFromString("0.00009"); !result.FeeEstimate.Amount.Equal(expected) {
		t.Fatalf("expected fee %s, got %s", expected, result.FeeEstimate.Amount)
	}

	short, appErr := strategy.CheckLiquidity(context.Background(), testRequest(btc, "2"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if short.Sufficient {
		t.Fatalf("expected insufficient liquidity for 2 BTC against 1.5")
	}
}

func TestBitcoinStrategyBoundaryIsInclusive(t *testing.T) {
	gateway := &fakeBitcoinGateway{tradable: decimal.NewFromInt(1)}
	strategy := NewBitcoinStrategy(gateway, &fakeAssetResolution{}, nil)
	btc := testAsset("BTC", valueobjects.BlockchainBitcoin, valueobjects.AssetTypeCoin, valueobjects.AssetCategoryPlain)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(btc, "1"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !result.Sufficient {
		t.Fatalf("expected exact available amount to be sufficient")
	}
}

func TestBitcoinStrategyPropagatesBackendError(t *testing.T) {
	gateway := &fakeBitcoinGateway{failWith: testBackendError()}
	strategy := NewBitcoinStrategy(gateway, &fakeAssetResolution{}, nil)
	btc := testAsset("BTC", valueobjects.BlockchainBitcoin, valueobjects.AssetTypeCoin, valueobjects.AssetCategoryPlain)

	if _, appErr := strategy.CheckLiquidity(context.Background(), testRequest(btc, "1")); appErr == nil {
		t.Fatalf("expected backend error to propagate")
	}
}

func TestEvmCoinStrategyChecksNativeBalance(t *testing.T) {
	gateway := &fakeEvmGateway{
		gasPrice:      decimal.RequireFromString("0.000000002"),
		coinLiquidity: decimal.NewFromInt(10),
	}
	strategy := NewEvmCoinStrategy(
		valueobjects.LiquidityAliasEthereumCoin,
		valueobjects.BlockchainEthereum,
		gateway, &fakeAssetResolution{}, nil,
	)
	eth := testAsset("ETH", valueobjects.BlockchainEthereum, valueobjects.AssetTypeCoin, valueobjects.AssetCategoryPlain)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(eth, "4"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !result.Sufficient {
		t.Fatalf("expected sufficient liquidity")
	}
	if expected := decimal.RequireFromString("0.000042"); !result.FeeEstimate.Amount.Equal(expected) {
		t.Fatalf("expected fee %s, got %s", expected, result.FeeEstimate.Amount)
	}
	if result.FeeEstimate.Asset.Name != "ETH" {
		t.Fatalf("expected ETH fee asset, got %s", result.FeeEstimate.Asset.Name)
	}
}

func TestEvmTokenStrategyChecksTokenBalance(t *testing.T) {
	gateway := &fakeEvmGateway{
		gasPrice:       decimal.RequireFromString("0.000000002"),
		tokenLiquidity: map[string]decimal.Decimal{"USDT": decimal.NewFromInt(500)},
	}
	strategy := NewEvmTokenStrategy(
		valueobjects.LiquidityAliasBscToken,
		valueobjects.BlockchainBsc,
		gateway, &fakeAssetResolution{}, nil,
	)
	usdt := testAsset("USDT", valueobjects.BlockchainBsc, valueobjects.AssetTypeToken, valueobjects.AssetCategoryPlain)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(usdt, "800"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if result.Sufficient {
		t.Fatalf("expected insufficient liquidity for 800 against 500")
	}
	// Fee stays in the chain's native coin.
	if result.FeeEstimate.Asset.Name != "BNB" {
		t.Fatalf("expected BNB fee asset, got %s", result.FeeEstimate.Asset.Name)
	}
}

func TestTokenchainPoolPairStrategyUsesPoolLiquidity(t *testing.T) {
	gateway := &fakeTokenLedgerGateway{
		poolLiquidity: map[string]decimal.Decimal{"ALPHA-TKC": decimal.NewFromInt(1000)},
	}
	strategy := NewTokenchainPoolPairStrategy(gateway, &fakeAssetResolution{}, nil)
	pooled := testAsset("ALPHA-TKC", valueobjects.BlockchainTokenchain, valueobjects.AssetTypeToken, valueobjects.AssetCategoryPooledLiquidity)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(pooled, "400"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !result.Sufficient {
		t.Fatalf("expected sufficient pool liquidity")
	}
	if !result.FeeEstimate.Amount.IsZero() {
		t.Fatalf("expected zero fee, got %s", result.FeeEstimate.Amount)
	}
}

func TestTokenchainDefaultStrategyUsesTokenLiquidity(t *testing.T) {
	gateway := &fakeTokenLedgerGateway{
		tokenLiquidity: map[string]decimal.Decimal{"ALPHA": decimal.NewFromInt(50)},
	}
	strategy := NewTokenchainDefaultStrategy(gateway, &fakeAssetResolution{}, nil)
	alpha := testAsset("ALPHA", valueobjects.BlockchainTokenchain, valueobjects.AssetTypeToken, valueobjects.AssetCategoryPlain)

	result, appErr := strategy.CheckLiquidity(context.Background(), testRequest(alpha, "60"))
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if result.Sufficient {
		t.Fatalf("expected insufficient token liquidity")
	}
	if result.FeeEstimate.Asset.Name != "TKC" {
		t.Fatalf("expected TKC fee asset, got %s", result.FeeEstimate.Asset.Name)
	}
}
