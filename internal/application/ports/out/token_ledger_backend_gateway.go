package out

import (
	"context"

	"payoutd/internal/application/dto"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// TokenLedgerBackendGateway is the client surface of the token-ledger chain.
// Distinct tokens cannot share one transaction, and light-wallet destination
// addresses need a minimal activation balance before they can receive tokens.
type TokenLedgerBackendGateway interface {
	SendTokenToMany(ctx context.Context, payoutContext string, tokenName string, recipients []dto.PayoutRecipient) (string, *apperrors.AppError)
	GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError)
	IsLightWalletAddress(address string) bool
	GetUtxoForAddress(ctx context.Context, address string) (decimal.Decimal, *apperrors.AppError)
	GetPoolPairLiquidity(ctx context.Context, poolPairName string) (decimal.Decimal, *apperrors.AppError)
	GetTokenLiquidity(ctx context.Context, tokenName string) (decimal.Decimal, *apperrors.AppError)
}
