package out

import (
	"context"

	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"
)

// AssetResolution looks up canonical asset records. Strategies use it to
// resolve their fee asset; the lookup may be an expensive external call.
type AssetResolution interface {
	GetNativeCoin(ctx context.Context, blockchain valueobjects.Blockchain) (entities.Asset, *apperrors.AppError)
	GetAsset(ctx context.Context, name string, blockchain valueobjects.Blockchain, assetType valueobjects.AssetType) (entities.Asset, *apperrors.AppError)
}
