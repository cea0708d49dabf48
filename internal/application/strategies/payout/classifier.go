package payout

import (
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// ResolveAlias maps an asset to its payout strategy alias. It is total over
// the supported (chain, type, category) combinations and never defaults
// silently. The payout family has no pool-specific alias on any chain, so
// category falls through to the type-based aliases.
func ResolveAlias(asset entities.Asset) (valueobjects.PayoutStrategyAlias, *apperrors.AppError) {
	switch asset.Blockchain {
	case valueobjects.BlockchainBitcoin:
		return valueobjects.PayoutAliasBitcoin, nil
	case valueobjects.BlockchainEthereum:
		return aliasByType(asset, valueobjects.PayoutAliasEthereumCoin, valueobjects.PayoutAliasEthereumToken)
	case valueobjects.BlockchainBsc:
		return aliasByType(asset, valueobjects.PayoutAliasBscCoin, valueobjects.PayoutAliasBscToken)
	case valueobjects.BlockchainTokenchain:
		return aliasByType(asset, valueobjects.PayoutAliasTokenchainCoin, valueobjects.PayoutAliasTokenchainToken)
	default:
		return "", classificationError(asset)
	}
}

func aliasByType(
	asset entities.Asset,
	coinAlias valueobjects.PayoutStrategyAlias,
	tokenAlias valueobjects.PayoutStrategyAlias,
) (valueobjects.PayoutStrategyAlias, *apperrors.AppError) {
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
		"payout_asset_unclassifiable",
		"no payout strategy alias for asset",
		map[string]any{
			"asset":      asset.Name,
			"blockchain": asset.Blockchain.String(),
			"type":       asset.Type.String(),
			"category":   asset.Category.String(),
		},
	)
}
