package assetcatalog

import (
	"context"
	"database/sql"
	stderrors "errors"

	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// ReadModel resolves canonical asset records from the catalog table. The
// catalog is reference data maintained outside this service; this adapter
// only reads it.
type ReadModel struct {
	db *sql.DB
}

var _ portsout.AssetResolution = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) GetNativeCoin(ctx context.Context, blockchain valueobjects.Blockchain) (entities.Asset, *apperrors.AppError) {
	const query = `
SELECT id, name, blockchain, type, category
FROM app.assets
WHERE blockchain = $1 AND type = 'coin' AND category = 'plain'
`

	asset, appErr := r.queryOne(ctx, query, blockchain.String())
	if appErr != nil {
		if appErr.IsType(apperrors.TypeNotFound) {
			return entities.Asset{}, apperrors.NewNotFound(
				"native_coin_not_found",
				"no native coin registered for blockchain",
				map[string]any{"blockchain": blockchain.String()},
			)
		}
		return entities.Asset{}, appErr
	}

	return asset, nil
}

func (r *ReadModel) GetAsset(
	ctx context.Context,
	name string,
	blockchain valueobjects.Blockchain,
	assetType valueobjects.AssetType,
) (entities.Asset, *apperrors.AppError) {
	const query = `
SELECT id, name, blockchain, type, category
FROM app.assets
WHERE name = $1 AND blockchain = $2 AND type = $3
`

	asset, appErr := r.queryOne(ctx, query, name, blockchain.String(), assetType.String())
	if appErr != nil {
		if appErr.IsType(apperrors.TypeNotFound) {
			return entities.Asset{}, apperrors.NewNotFound(
				"asset_not_found",
				"asset is not registered in the catalog",
				map[string]any{"name": name, "blockchain": blockchain.String(), "type": assetType.String()},
			)
		}
		return entities.Asset{}, appErr
	}

	return asset, nil
}

func (r *ReadModel) queryOne(ctx context.Context, query string, args ...any) (entities.Asset, *apperrors.AppError) {
	var (
		asset      entities.Asset
		blockchain string
		assetType  string
		category   string
	)

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&asset.ID,
		&asset.Name,
		&blockchain,
		&assetType,
		&category,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.Asset{}, apperrors.NewNotFound("asset_row_missing", "asset row not found", nil)
	}
	if err != nil {
		return entities.Asset{}, apperrors.NewInternal(
			"asset_catalog_query_failed",
			"failed to query asset catalog",
			map[string]any{"error": err.Error()},
		)
	}

	asset.Blockchain = valueobjects.Blockchain(blockchain)
	asset.Type = valueobjects.AssetType(assetType)

	parsedCategory, appErr := valueobjects.ParseAssetCategory(category)
	if appErr != nil {
		return entities.Asset{}, appErr
	}
	asset.Category = parsedCategory

	return asset, nil
}
