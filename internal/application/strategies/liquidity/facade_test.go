//go:build !integration

package liquidity

import (
	"strings"
	"testing"

	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()

	assets := &fakeAssetResolution{}
	evm := &fakeEvmGateway{}
	tokenLedger := &fakeTokenLedgerGateway{}

	return NewFacade(
		NewBitcoinStrategy(&fakeBitcoinGateway{}, assets, nil),
		NewEvmCoinStrategy(valueobjects.LiquidityAliasEthereumCoin, valueobjects.BlockchainEthereum, evm, assets, nil),
		NewEvmTokenStrategy(valueobjects.LiquidityAliasEthereumToken, valueobjects.BlockchainEthereum, evm, assets, nil),
		NewEvmCoinStrategy(valueobjects.LiquidityAliasBscCoin, valueobjects.BlockchainBsc, evm, assets, nil),
		NewEvmTokenStrategy(valueobjects.LiquidityAliasBscToken, valueobjects.BlockchainBsc, evm, assets, nil),
		NewTokenchainPoolPairStrategy(tokenLedger, assets, nil),
		NewTokenchainDefaultStrategy(tokenLedger, assets, nil),
	)
}

func TestFacadeResolvesEveryAlias(t *testing.T) {
	facade := newTestFacade(t)

	for _, alias := range valueobjects.AllLiquidityStrategyAliases() {
		strategy, appErr := facade.ByAlias(alias)
		if appErr != nil {
			t.Fatalf("alias %s: expected strategy, got %+v", alias, appErr)
		}
		if strategy.Alias() != alias {
			t.Fatalf("alias %s: resolved strategy reports %s", alias, strategy.Alias())
		}
	}
}

func TestFacadeResolvesConcreteTypes(t *testing.T) {
	facade := newTestFacade(t)

	byAlias := func(alias valueobjects.LiquidityStrategyAlias) Strategy {
		strategy, appErr := facade.ByAlias(alias)
		if appErr != nil {
			t.Fatalf("alias %s: %+v", alias, appErr)
		}
		return strategy
	}

	if _, ok := byAlias(valueobjects.LiquidityAliasBitcoin).(*BitcoinStrategy); !ok {
		t.Fatalf("expected BitcoinStrategy for bitcoin alias")
	}
	if _, ok := byAlias(valueobjects.LiquidityAliasBscCoin).(*EvmCoinStrategy); !ok {
		t.Fatalf("expected EvmCoinStrategy for bsc_coin alias")
	}
	if _, ok := byAlias(valueobjects.LiquidityAliasTokenchainPoolPair).(*TokenchainPoolPairStrategy); !ok {
		t.Fatalf("expected TokenchainPoolPairStrategy for tokenchain_pool_pair alias")
	}
	if _, ok := byAlias(valueobjects.LiquidityAliasTokenchainDefault).(*TokenchainDefaultStrategy); !ok {
		t.Fatalf("expected TokenchainDefaultStrategy for tokenchain_default alias")
	}
}

func TestFacadeUnknownAliasCarriesAliasInMessage(t *testing.T) {
	facade := newTestFacade(t)

	_, appErr := facade.ByAlias(valueobjects.LiquidityStrategyAlias("dogecoin"))
	if appErr == nil {
		t.Fatalf("expected error")
	}
	if appErr.Type != apperrors.TypeUnknownAlias {
		t.Fatalf("expected unknown alias error, got %s", appErr.Type)
	}
	if !strings.Contains(appErr.Message, "dogecoin") {
		t.Fatalf("expected alias in message, got %q", appErr.Message)
	}
}

func TestFacadeByAssetUsesClassifier(t *testing.T) {
	facade := newTestFacade(t)

	pooled := testAsset("ALPHA-TKC", valueobjects.BlockchainTokenchain, valueobjects.AssetTypeToken, valueobjects.AssetCategoryPooledLiquidity)
	strategy, appErr := facade.ByAsset(pooled)
	if appErr != nil {
		t.Fatalf("expected strategy, got %+v", appErr)
	}
	if strategy.Alias() != valueobjects.LiquidityAliasTokenchainPoolPair {
		t.Fatalf("expected pool pair strategy, got %s", strategy.Alias())
	}

	unknown := testAsset("X", valueobjects.Blockchain("solana"), valueobjects.AssetTypeCoin, valueobjects.AssetCategoryPlain)
	if _, appErr := facade.ByAsset(unknown); appErr == nil || appErr.Type != apperrors.TypeClassification {
		t.Fatalf("expected classification error, got %+v", appErr)
	}
}

func TestFacadePanicsOnIncompleteRegistration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()

	NewFacade(NewBitcoinStrategy(&fakeBitcoinGateway{}, &fakeAssetResolution{}, nil))
}

func TestFacadePanicsOnDuplicateRegistration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()

	assets := &fakeAssetResolution{}
	NewFacade(
		NewBitcoinStrategy(&fakeBitcoinGateway{}, assets, nil),
		NewBitcoinStrategy(&fakeBitcoinGateway{}, assets, nil),
	)
}
