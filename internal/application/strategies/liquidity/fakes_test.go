//go:build !integration

package liquidity

import (
	"context"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

type fakeAssetResolution struct{}

func (f *fakeAssetResolution) GetNativeCoin(_ context.Context, blockchain valueobjects.Blockchain) (entities.Asset, *apperrors.AppError) {
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

type fakeBitcoinGateway struct {
	tradable decimal.Decimal
	feeRate  decimal.Decimal
	failWith *apperrors.AppError
}

func (f *fakeBitcoinGateway) GetCurrentFeeRate(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return f.feeRate, nil
}

func (f *fakeBitcoinGateway) SendUtxoToMany(_ context.Context, _ string, _ []dto.PayoutRecipient) (string, *apperrors.AppError) {
	return "", apperrors.NewInternal("not_implemented", "not used in liquidity tests", nil)
}

func (f *fakeBitcoinGateway) GetPayoutCompletion(_ context.Context, _ string) (dto.PayoutCompletion, *apperrors.AppError) {
	return dto.PayoutCompletion{}, nil
}

func (f *fakeBitcoinGateway) GetTradableLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	return f.tradable, nil
}

type fakeEvmGateway struct {
	gasPrice       decimal.Decimal
	coinLiquidity  decimal.Decimal
	tokenLiquidity map[string]decimal.Decimal
}

func (f *fakeEvmGateway) GetCurrentGasPrice(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return f.gasPrice, nil
}

func (f *fakeEvmGateway) SendNativeCoin(_ context.Context, _ dto.PayoutRecipient) (string, *apperrors.AppError) {
	return "", apperrors.NewInternal("not_implemented", "not used in liquidity tests", nil)
}

func (f *fakeEvmGateway) SendToken(_ context.Context, _ entities.Asset, _ dto.PayoutRecipient) (string, *apperrors.AppError) {
	return "", apperrors.NewInternal("not_implemented", "not used in liquidity tests", nil)
}

func (f *fakeEvmGateway) GetPayoutCompletion(_ context.Context, _ string) (dto.PayoutCompletion, *apperrors.AppError) {
	return dto.PayoutCompletion{}, nil
}

func (f *fakeEvmGateway) GetCoinLiquidity(_ context.Context) (decimal.Decimal, *apperrors.AppError) {
	return f.coinLiquidity, nil
}

func (f *fakeEvmGateway) GetTokenLiquidity(_ context.Context, asset entities.Asset) (decimal.Decimal, *apperrors.AppError) {
	return f.tokenLiquidity[asset.Name], nil
}

type fakeTokenLedgerGateway struct {
	poolLiquidity  map[string]decimal.Decimal
	tokenLiquidity map[string]decimal.Decimal
}

func (f *fakeTokenLedgerGateway) SendTokenToMany(_ context.Context, _ string, _ string, _ []dto.PayoutRecipient) (string, *apperrors.AppError) {
	return "", apperrors.NewInternal("not_implemented", "not used in liquidity tests", nil)
}

func (f *fakeTokenLedgerGateway) GetPayoutCompletion(_ context.Context, _ string) (dto.PayoutCompletion, *apperrors.AppError) {
	return dto.PayoutCompletion{}, nil
}

func (f *fakeTokenLedgerGateway) IsLightWalletAddress(_ string) bool {
	return false
}

func (f *fakeTokenLedgerGateway) GetUtxoForAddress(_ context.Context, _ string) (decimal.Decimal, *apperrors.AppError) {
	return decimal.Zero, nil
}

func (f *fakeTokenLedgerGateway) GetPoolPairLiquidity(_ context.Context, poolName string) (decimal.Decimal, *apperrors.AppError) {
	return f.poolLiquidity[poolName], nil
}

func (f *fakeTokenLedgerGateway) GetTokenLiquidity(_ context.Context, tokenName string) (decimal.Decimal, *apperrors.AppError) {
	return f.tokenLiquidity[tokenName], nil
}

func testBackendError() *apperrors.AppError {
	return apperrors.NewBackend("btc_node_unreachable", "connection refused", nil)
}

func testAsset(name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType, category valueobjects.AssetCategory) entities.Asset {
	return entities.Asset{
		ID:         "asset_" + name,
		Name:       name,
		Blockchain: blockchain,
		Type:       assetType,
		Category:   category,
	}
}

func testRequest(asset entities.Asset, amount string) dto.CheckLiquidityRequest {
	return dto.CheckLiquidityRequest{
		CorrelationID:   "corr-1",
		TargetAsset:     asset,
		RequestedAmount: decimal.RequireFromString(amount),
	}
}
