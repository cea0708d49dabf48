package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	"payoutd/internal/domain/entities"
	"payoutd/internal/infrastructure/chainaddress"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

const (
	evmNativeDecimals = 18

	// ERC-20 selectors.
	erc20TransferSelector  = "a9059cbb"
	erc20BalanceOfSelector = "70a08231"
)

// EvmGateway talks to one account-based chain node over JSON-RPC. Token
// contract addresses and decimals come from configuration; the asset catalog
// only carries names.
type EvmGateway struct {
	rpc            *jsonRPCClient
	rpcURL         string
	fromAddress    string
	tokenContracts map[string]string
	tokenDecimals  map[string]int32
}

var _ portsout.EvmBackendGateway = (*EvmGateway)(nil)

type EvmGatewayConfig struct {
	RPCURL            string
	FromAddress       string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	MaxAttempts       int
	TokenContracts    map[string]string
	TokenDecimals     map[string]int32
}

func NewEvmGateway(httpClient *http.Client, config EvmGatewayConfig) *EvmGateway {
	return &EvmGateway{
		rpc:            newJSONRPCClient(httpClient, config.HTTPTimeout, config.RequestsPerSecond, config.MaxAttempts),
		rpcURL:         strings.TrimSpace(config.RPCURL),
		fromAddress:    strings.TrimSpace(config.FromAddress),
		tokenContracts: config.TokenContracts,
		tokenDecimals:  config.TokenDecimals,
	}
}

// GetCurrentGasPrice reports the node gas price denominated in the native
// coin per gas unit.
func (g *EvmGateway) GetCurrentGasPrice(ctx context.Context) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "eth_gasPrice", []any{})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	wei, appErr := unmarshalHexQuantity(raw, "eth_gasPrice")
	if appErr != nil {
		return decimal.Zero, appErr
	}

	return baseUnitsToAmount(wei, evmNativeDecimals), nil
}

func (g *EvmGateway) SendNativeCoin(ctx context.Context, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	destination, appErr := normalizeDestination(recipient.Address)
	if appErr != nil {
		return "", appErr
	}

	value, appErr := amountToHexBaseUnits(recipient.Amount, evmNativeDecimals)
	if appErr != nil {
		return "", appErr
	}

	return g.sendTransaction(ctx, map[string]any{
		"from":  g.fromAddress,
		"to":    destination,
		"value": value,
	})
}

func (g *EvmGateway) SendToken(ctx context.Context, asset entities.Asset, recipient dto.PayoutRecipient) (string, *apperrors.AppError) {
	contract, decimals, appErr := g.tokenConfig(asset)
	if appErr != nil {
		return "", appErr
	}

	destination, appErr := normalizeDestination(recipient.Address)
	if appErr != nil {
		return "", appErr
	}

	amountHex, appErr := amountToHexBaseUnits(recipient.Amount, decimals)
	if appErr != nil {
		return "", appErr
	}

	data := "0x" + erc20TransferSelector +
		leftPad32(strings.TrimPrefix(destination, "0x")) +
		leftPad32(strings.TrimPrefix(amountHex, "0x"))

	return g.sendTransaction(ctx, map[string]any{
		"from": g.fromAddress,
		"to":   contract,
		"data": data,
	})
}

func (g *EvmGateway) GetPayoutCompletion(ctx context.Context, txID string) (dto.PayoutCompletion, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "eth_getTransactionReceipt", []any{txID})
	if appErr != nil {
		return dto.PayoutCompletion{}, appErr
	}
	if len(raw) == 0 || string(raw) == "null" {
		return dto.PayoutCompletion{}, nil
	}

	var receipt struct {
		Status            string `json:"status"`
		BlockNumber       string `json:"blockNumber"`
		GasUsed           string `json:"gasUsed"`
		EffectiveGasPrice string `json:"effectiveGasPrice"`
	}
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return dto.PayoutCompletion{}, decodeError("eth_getTransactionReceipt", err)
	}
	if receipt.BlockNumber == "" {
		return dto.PayoutCompletion{}, nil
	}
	if receipt.Status != "0x1" {
		return dto.PayoutCompletion{}, apperrors.NewBackend(
			"evm_transaction_reverted",
			"transaction was mined but reverted",
			map[string]any{"tx_id": txID, "status": receipt.Status},
		)
	}

	gasUsed, appErr := parseHexQuantity(receipt.GasUsed)
	if appErr != nil {
		return dto.PayoutCompletion{}, appErr
	}
	gasPrice, appErr := parseHexQuantity(receipt.EffectiveGasPrice)
	if appErr != nil {
		return dto.PayoutCompletion{}, appErr
	}

	return dto.PayoutCompletion{
		Complete:  true,
		FeeAmount: baseUnitsToAmount(gasUsed.Mul(gasPrice), evmNativeDecimals),
	}, nil
}

func (g *EvmGateway) GetCoinLiquidity(ctx context.Context) (decimal.Decimal, *apperrors.AppError) {
	raw, appErr := g.rpc.Call(ctx, g.rpcURL, "eth_getBalance", []any{g.fromAddress, "latest"})
	if appErr != nil {
		return decimal.Zero, appErr
	}

	wei, appErr := unmarshalHexQuantity(raw, "eth_getBalance")
	if appErr != nil {
		return decimal.Zero, appErr
	}

	return baseUnitsToAmount(wei, evmNativeDecimals), nil
}

func (g *EvmGateway) GetTokenLiquidity(ctx context.Context, asset entities.Asset) (decimal.Decimal, *apperrors.AppError) {
	contract, decimals, appErr := g.tokenConfig(asset)
	if appErr != nil {
		return decimal.Zero, appErr
	}

	data := "0x" + erc20BalanceOfSelector +
		leftPad32(strings.TrimPrefix(strings.ToLower(g.fromAddress), "0x"))

	raw, rpcErr := g.rpc.Call(ctx, g.rpcURL, "eth_call", []any{
		map[string]any{"to": contract, "data": data},
		"latest",
	})
	if rpcErr != nil {
		return decimal.Zero, rpcErr
	}

	baseUnits, appErr := unmarshalHexQuantity(raw, "eth_call")
	if appErr != nil {
		return decimal.Zero, appErr
	}

	return baseUnitsToAmount(baseUnits, decimals), nil
}

func (g *EvmGateway) sendTransaction(ctx context.Context, tx map[string]any) (string, *apperrors.AppError) {
	raw, appErr := g.rpc.CallNoRetry(ctx, g.rpcURL, "eth_sendTransaction", []any{tx})
	if appErr != nil {
		return "", appErr
	}

	var txHash string
	if err := json.Unmarshal(raw, &txHash); err != nil {
		return "", decodeError("eth_sendTransaction", err)
	}

	return txHash, nil
}

func normalizeDestination(address string) (string, *apperrors.AppError) {
	normalized, err := chainaddress.NormalizeEvmAddress(address)
	if err != nil {
		return "", apperrors.NewValidation(
			"evm_address_invalid",
			"destination address is not a valid account-chain address",
			map[string]any{"address": address, "error": err.Error()},
		)
	}
	return normalized, nil
}

func (g *EvmGateway) tokenConfig(asset entities.Asset) (string, int32, *apperrors.AppError) {
	contract, exists := g.tokenContracts[asset.Name]
	if !exists {
		return "", 0, apperrors.NewValidation(
			"evm_token_contract_unknown",
			fmt.Sprintf("no contract configured for token %s", asset.Name),
			map[string]any{"asset": asset.UniqueName()},
		)
	}

	decimals, exists := g.tokenDecimals[asset.Name]
	if !exists {
		decimals = evmNativeDecimals
	}

	return contract, decimals, nil
}

func unmarshalHexQuantity(raw json.RawMessage, method string) (decimal.Decimal, *apperrors.AppError) {
	var hexValue string
	if err := json.Unmarshal(raw, &hexValue); err != nil {
		return decimal.Zero, decodeError(method, err)
	}
	return parseHexQuantity(hexValue)
}
