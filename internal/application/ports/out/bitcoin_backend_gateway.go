package out

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// BitcoinBackendGateway is the narrow client surface of the UTXO chain
// backend. Fee rates are in sat/vByte; amounts in BTC.
type BitcoinBackendGateway interface {
	GetCurrentFeeRate(ctx context.Context) (decimal.Decimal, *apperrors.AppError)
	SendUtxoToMany(ctx context.Context, payoutContext string, recipients []dto.PayoutRecipient) (string, *apperrors.AppError)
	GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError)
	GetTradableLiquidity(ctx context.Context) (decimal.Decimal, *apperrors.AppError)
}
