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
	// estimatesmartfee reports BTC per kvB; payout math wants sat per vByte.
	btcPerKvbToSatPerVbyte = 100_000
	bitcoinFeeTargetBlocks = 6
	bitcoinFinalityDepth   = 6
)

// BitcoinGateway talks to a Bitcoin Core compatible wallet node over
// JSON-RPC.
type BitcoinGateway struct {
	rpc    *jsonRPCClient
	rpcURL string
}

var _ portsout.BitcoinBackendGateway = (*BitcoinGateway)(nil)

type BitcoinGatewayConfig struct {
	RPCURL            string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	MaxAttempts       int
}

func NewBitcoinGateway(httpClient *http.Client, config BitcoinGatewayConfig) *BitcoinGateway {
	return &BitcoinGateway{
		rpc:    newJSONRPCClient(httpClient, config.HTTPTimeout, config.RequestsPerSecond, config.MaxAttempts),
		rpcURL: strings.TrimSpace(config.RPCURL),
	}
}

func (g *BitcoinGateway) GetCurrentFeeRate(ctx context.Context) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "estimatesmartfee", []any{bitcoinFeeTargetBlocks})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	var result struct {
		FeeRate *json.Number `json:"feerate"`
		Errors  []string     `json:"errors"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return decimal.Zero, decodeError("estimatesmartfee", err)
	}
	if result.FeeRate == nil {
		return decimal.Zero, apperrors.NewBackend(
			"btc_fee_estimate_unavailable",
			"node returned no fee estimate",
			map[string]any{"errors": result.Errors},
		)
	}

	btcPerKvb, err := decimal.NewFromString(result.FeeRate.String())
	if err != nil {
		return decimal.Zero, decodeError("estimatesmartfee", err)
	}

	return btcPerKvb.Mul(decimal.NewFromInt(btcPerKvbToSatPerVbyte)), nil
}

func (g *BitcoinGateway) SendUtxoToMany(
	ctx context.Context,
	payoutContext string,
	recipients []dto.PayoutRecipient,
) (string, *apperrors.AppError) {
	amounts := make(map[string]decimal.Decimal, len(recipients))
	for _, recipient := range recipients {
		if err := chainaddress.ValidateBitcoinAddress(recipient.Address); err != nil {
			return "", apperrors.NewValidation(
				"bitcoin_address_invalid",
				"destination address is not a valid utxo-chain address",
				map[string]any{"address": recipient.Address, "error": err.Error()},
			)
		}
		amounts[recipient.Address] = amounts[recipient.Address].Add(recipient.Amount)
	}

	raw, appErr := g.rpc.CallNoRetry(ctx, g.rpcURL, "sendmany", []any{"", amounts, 0, payoutContext})
	if appErr != nil {
		return "", appErr
	}

	var txID string
	if err := json.Unmarshal(raw, &txID); err != nil {
		return "", decodeError("sendmany", err)
	}

	return txID, nil
}

func (g *BitcoinGateway) GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "gettransaction", []any{txID})
	if appErr != nil {
		return dto.PayoutCompletion{}, appErr
	}

	var result struct {
		Confirmations int64       `json:"confirmations"`
		Fee           json.Number `json:"fee"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return dto.PayoutCompletion{}, decodeError("gettransaction", err)
	}
	if result.Confirmations < bitcoinFinalityDepth {
		return dto.PayoutCompletion{}, nil
	}

	// The wallet reports the fee as a negative BTC amount.
	fee, err := decimal.NewFromString(result.Fee.String())
	if err != nil {
		return dto.PayoutCompletion{}, decodeError("gettransaction", err)
	}

	return dto.PayoutCompletion{Complete: true, FeeAmount: fee.Abs()}, nil
}

func (g *BitcoinGateway) GetTradableLiquidity(ctx context.Context) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "getbalance", []any{})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	var balance json.Number
	if err := json.Unmarshal(raw, &balance); err != nil {
		return decimal.Zero, decodeError("getbalance", err)
	}

	parsed, err := decimal.NewFromString(balance.String())
	if err != nil {
		return decimal.Zero, decodeError("getbalance", err)
	}

	return parsed, nil
}

func decodeError(method string, err error) *apperrors.AppError {
	return apperrors.NewBackend(
		"chain_rpc_payload_invalid",
		"failed to decode rpc payload",
		map[string]any{"method": method, "error": err.Error()},
	)
}
