package liquidity

import (
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// ResolveAlias maps an asset to its liquidity strategy alias. On the
// token-ledger chain the asset category wins over the type field: a
// pooled-liquidity asset always resolves to the pool-pair strategy, anything
// else falls to the chain-wide default. The other chains resolve by type.
func ResolveAlias(asset entities.Asset) (valueobjects.LiquidityStrategyAlias, *apperrors.AppError) {
	switch asset.Blockchain {
	case valueobjects.BlockchainBitcoin:
		return valueobjects.LiquidityAliasBitcoin, nil
	case valueobjects.BlockchainEthereum:
		return aliasByType(asset, valueobjects.LiquidityAliasEthereumCoin, valueobjects.LiquidityAliasEthereumToken)
	case valueobjects.BlockchainBsc:
		return aliasByType(asset, valueobjects.LiquidityAliasBscCoin, valueobjects.LiquidityAliasBscToken)
	case valueobjects.BlockchainTokenchain:
		if asset.IsPooledLiquidity() {
			return valueobjects.LiquidityAliasTokenchainPoolPair, nil
		}
		return valueobjects.LiquidityAliasTokenchainDefault, nil
	default:
		return "", classificationError(asset)
	}
}

func aliasByType(
	asset entities.Asset,
	coinAlias valueobjects.LiquidityStrategyAlias,
	tokenAlias valueobjects.LiquidityStrategyAlias,
) (valueobjects.LiquidityStrategyAlias, *apperrors.AppError) {
	switch asset.Type {
	case valueobjects.AssetTypeCoin:
		return coinAlias, nil
	case valueobjects.AssetTypeToken:
		return tokenAlias, nil
	default:
		return "", classificationError(asset)
	}
}

func classificationError(asset entities.Asset) *apperrors.AppError {
	return apperrors.NewClassification(
		"liquidity_asset_unclassifiable",
		"no liquidity strategy alias for asset",
		map[string]any{
			"asset":      asset.Name,
			"blockchain": asset.Blockchain.String(),
			"type":       asset.Type.String(),
			"category":   asset.Category.String(),
		},
	)
}
