package entities

import (
	valueobjects "payoutd/internal/domain/value_objects"
)

// Asset is immutable reference data describing one tradable unit. It is
// owned by the asset catalog; the payout core only reads it.
type Asset struct {
	ID         string
	Name       string
	Blockchain valueobjects.Blockchain
	Type       valueobjects.AssetType
	Category   valueobjects.AssetCategory
}

func (a Asset) IsPooledLiquidity() bool {
	return a.Category == valueobjects.AssetCategoryPooledLiquidity
}

func (a Asset) UniqueName() string {
	return a.Blockchain.String() + "/" + a.Name
}
