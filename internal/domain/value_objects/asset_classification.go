package valueobjects

import apperrors "payoutd/internal/shared_kernel/errors"

// AssetType is the value-transfer type of an asset: the chain's native coin
// or a token settled through the chain's token mechanism.
type AssetType string

const (
	AssetTypeCoin  AssetType = "coin"
	AssetTypeToken AssetType = "token"
)

func ParseAssetType(raw string) (AssetType, *apperrors.AppError) {
	switch raw {
	case string(AssetTypeCoin):
		return AssetTypeCoin, nil
	case string(AssetTypeToken):
		return AssetTypeToken, nil
	default:
		return "", apperrors.NewValidation(
			"asset_type_invalid",
			"asset type is not supported",
			map[string]any{"asset_type": raw},
		)
	}
}

func (t AssetType) String() string {
	return string(t)
}

// AssetCategory distinguishes plain assets from pooled-liquidity instruments.
// Category takes precedence over type during strategy resolution.
type AssetCategory string

const (
	AssetCategoryPlain           AssetCategory = "plain"
	AssetCategoryPooledLiquidity AssetCategory = "pooled_liquidity"
)

func ParseAssetCategory(raw string) (AssetCategory, *apperrors.AppError) {
	switch raw {
	case string(AssetCategoryPlain):
		return AssetCategoryPlain, nil
	case string(AssetCategoryPooledLiquidity):
		return AssetCategoryPooledLiquidity, nil
	default:
		return "", apperrors.NewValidation(
			"asset_category_invalid",
			"asset category is not supported",
			map[string]any{"asset_category": raw},
		)
	}
}

func (c AssetCategory) String() string {
	return string(c)
}
