package out

import (
	"context"

	apperrors "payoutd/internal/shared_kernel/errors"
)

// LiquidityTransferGateway issues the corrective minimal-coin transfer that
// seeds a destination address with its activation balance.
type LiquidityTransferGateway interface {
	TransferMinimalCoin(ctx context.Context, address string) (string, *apperrors.AppError)
}
