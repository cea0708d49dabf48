package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/infrastructure/chainaddress"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

const (
	tokenLedgerFinalityDepth = 20

	// minimalActivationAmount is the corrective coin transfer that lets a
	// light wallet hold tokens.
	minimalActivationAmount = "0.0001"
)

// TokenLedgerGateway talks to the token-ledger chain node over JSON-RPC.
// Token balances live in accounts addressed as "amount@TOKEN" strings; coin
// balances live in UTXOs like the Bitcoin chain.
type TokenLedgerGateway struct {
	rpc                *jsonRPCClient
	rpcURL             string
	walletAddress      string
	lightWalletPrefix  string
	activationTransfer decimal.Decimal
}

var _ portsout.TokenLedgerBackendGateway = (*TokenLedgerGateway)(nil)
var _ portsout.LiquidityTransferGateway = (*TokenLedgerGateway)(nil)

type TokenLedgerGatewayConfig struct {
	RPCURL            string
	WalletAddress     string
	LightWalletPrefix string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	MaxAttempts       int
}

func NewTokenLedgerGateway(httpClient *http.Client, config TokenLedgerGatewayConfig) *TokenLedgerGateway {
	return &TokenLedgerGateway{
		rpc:                newJSONRPCClient(httpClient, config.HTTPTimeout, config.RequestsPerSecond, config.MaxAttempts),
		rpcURL:             strings.TrimSpace(config.RPCURL),
		walletAddress:      strings.TrimSpace(config.WalletAddress),
		lightWalletPrefix:  strings.TrimSpace(config.LightWalletPrefix),
		activationTransfer: decimal.RequireFromString(minimalActivationAmount),
	}
}

func (g *TokenLedgerGateway) SendTokenToMany(
	ctx context.Context,
	payoutContext string,
	tokenName string,
	recipients []dto.PayoutRecipient,
) (string, *apperrors.AppError) {
	amounts := make(map[string]string, len(recipients))
	for _, recipient := range recipients {
		if err := chainaddress.ValidateLedgerAccount(recipient.Address); err != nil {
			return "", apperrors.NewValidation(
				"token_ledger_account_invalid",
				"destination account is not a valid ledger account",
				map[string]any{"address": recipient.Address, "error": err.Error()},
			)
		}
		existing := decimal.Zero
		if raw, exists := amounts[recipient.Address]; exists {
			existing = decimal.RequireFromString(strings.SplitN(raw, "@", 2)[0])
		}
		amounts[recipient.Address] = existing.Add(recipient.Amount).String() + "@" + tokenName
	}

	raw, appErr := g.rpc.CallNoRetry(ctx, g.rpcURL, "sendtokenstoaddress", []any{
		map[string]any{},
		amounts,
	})
	if appErr != nil {
		return "", appErr
	}

	var txID string
	if err := json.Unmarshal(raw, &txID); err != nil {
		return "", decodeError("sendtokenstoaddress", err)
	}

	return txID, nil
}

func (g *TokenLedgerGateway) GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "gettransaction", []any{txID})
	if appErr != nil {
		return dto.PayoutCompletion{}, appErr
	}

	var result struct {
		Confirmations int64 `json:"confirmations"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return dto.PayoutCompletion{}, decodeError("gettransaction", err)
	}
	if result.Confirmations < tokenLedgerFinalityDepth {
		return dto.PayoutCompletion{}, nil
	}

	// Token transfers spend no fee from the payout wallet.
	return dto.PayoutCompletion{Complete: true, FeeAmount: decimal.Zero}, nil
}

func (g *TokenLedgerGateway) IsLightWalletAddress(address string) bool {
	if g.lightWalletPrefix == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(address), g.lightWalletPrefix)
}

func (g *TokenLedgerGateway) GetUtxoForAddress(ctx context.Context, address string) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "listunspent", []any{0, 9999999, []string{address}})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	var unspent []struct {
		Amount json.Number `json:"amount"`
	}
	if err := json.Unmarshal(raw, &unspent); err != nil {
		return decimal.Zero, decodeError("listunspent", err)
	}

	total := decimal.Zero
	for _, utxo := range unspent {
		amount, err := decimal.NewFromString(utxo.Amount.String())
		if err != nil {
			return decimal.Zero, decodeError("listunspent", err)
		}
		total = total.Add(amount)
	}

	return total, nil
}

func (g *TokenLedgerGateway) GetPoolPairLiquidity(ctx context.Context, poolName string) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "getpoolpair", []any{poolName})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	// The node keys the result by internal pool id.
	var pools map[string]struct {
		TotalLiquidity json.Number `json:"totalLiquidity"`
	}
	if err := json.Unmarshal(raw, &pools); err != nil {
		return decimal.Zero, decodeError("getpoolpair", err)
	}

	for _, pool := range pools {
		liquidity, err := decimal.NewFromString(pool.TotalLiquidity.String())
		if err != nil {
			return decimal.Zero, decodeError("getpoolpair", err)
		}
		return liquidity, nil
	}

	return decimal.Zero, apperrors.NewBackend(
		"token_pool_pair_unknown",
		"node returned no pool pair",
		map[string]any{"pool": poolName},
	)
}

func (g *TokenLedgerGateway) GetTokenLiquidity(ctx context.Context, tokenName string) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "getaccount", []any{g.walletAddress})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	var balances []string
	if err := json.Unmarshal(raw, &balances); err != nil {
		return decimal.Zero, decodeError("getaccount", err)
	}

	for _, entry := range balances {
		parts := strings.SplitN(entry, "@", 2)
		if len(parts) != 2 || parts[1] != tokenName {
			continue
		}
		amount, err := decimal.NewFromString(parts[0])
		if err != nil {
			return decimal.Zero, decodeError("getaccount", err)
		}
		return amount, nil
	}

	return decimal.Zero, nil
}

// TransferMinimalCoin seeds a light wallet with the smallest useful coin
// balance so a following token transfer can land.
func (g *TokenLedgerGateway) TransferMinimalCoin(ctx context.Context, address string) (string, *apperrors.AppError) {
	raw, appErr := g.rpc.CallNoRetry(ctx, g.rpcURL, "sendtoaddress", []any{address, g.activationTransfer})
	if appErr != nil {
		return "", appErr
	}

	var txID string
	if err := json.Unmarshal(raw, &txID); err != nil {
		return "", decodeError("sendtoaddress", err)
	}

	return txID, nil
}
