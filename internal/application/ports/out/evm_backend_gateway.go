package out

import (
	"context"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// EvmBackendGateway is the client surface of one account-based chain. One
// instance exists per chain; strategies receive theirs by injection. Gas
// prices are in the chain's native coin per gas unit; amounts in coin units.
type EvmBackendGateway interface {
	GetCurrentGasPrice(ctx context.Context) (decimal.Decimal, *apperrors.AppError)
	SendNativeCoin(ctx context.Context, recipient dto.PayoutRecipient) (string, *apperrors.AppError)
	SendToken(ctx context.Context, token entities.Asset, recipient dto.PayoutRecipient) (string, *apperrors.AppError)
	GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError)
	GetCoinLiquidity(ctx context.Context) (decimal.Decimal, *apperrors.AppError)
	GetTokenLiquidity(ctx context.Context, token entities.Asset) (decimal.Decimal, *apperrors.AppError)
}
