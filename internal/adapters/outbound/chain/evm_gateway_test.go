//go:build !integration

package chain

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"payoutd/internal/application/dto"
	"payoutd/internal/domain/entities"
	valueobjects "payoutd/internal/domain/value_objects"
	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

const testEvmFrom = "0x61ed32e69db70c5abab0522d80e8f5db215965de"

func newTestEvmGateway(node *fakeNode) *EvmGateway {
	timeout, rps, attempts := testClientConfig()
	return NewEvmGateway(http.DefaultClient, EvmGatewayConfig{
		RPCURL:            node.server.URL,
		FromAddress:       testEvmFrom,
		HTTPTimeout:       timeout,
		RequestsPerSecond: rps,
		MaxAttempts:       attempts,
		TokenContracts:    map[string]string{"USDT": "0x000000000000000000000000000000000000beef"},
		TokenDecimals:     map[string]int32{"USDT": 6},
	})
}

func evmTestToken() entities.Asset {
	return entities.Asset{
		Name:       "USDT",
		Blockchain: valueobjects.BlockchainEthereum,
		Type:       valueobjects.AssetTypeToken,
	}
}

func TestGetCurrentGasPriceReturnsCoinPerGasUnit(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		if method != "eth_gasPrice" {
			t.Fatalf("unexpected method %q", method)
		}
		// 2 gwei
		return "0x77359400", ""
	})

	gateway := newTestEvmGateway(node)
	gasPrice, appErr := gateway.GetCurrentGasPrice(context.Background())
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !gasPrice.Equal(decimal.RequireFromString("0.000000002")) {
		t.Fatalf("expected 2 gwei in coin units, got %s", gasPrice)
	}
}

func TestSendNativeCoinBuildsValueTransfer(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		if method != "eth_sendTransaction" {
			t.Fatalf("unexpected method %q", method)
		}
		tx, ok := params[0].(map[string]any)
		if !ok {
			t.Fatalf("unexpected tx payload %+v", params[0])
		}
		if tx["from"] != testEvmFrom {
			t.Fatalf("unexpected from %v", tx["from"])
		}
		// 1.5 coin in wei
		if tx["value"] != "0x14d1120d7b160000" {
			t.Fatalf("unexpected value %v", tx["value"])
		}
		return "0xevmtx1", ""
	})

	gateway := newTestEvmGateway(node)
	txID, appErr := gateway.SendNativeCoin(context.Background(), dto.PayoutRecipient{
		Address: "0xcafe000000000000000000000000000000000001",
		Amount:  decimal.RequireFromString("1.5"),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if txID != "0xevmtx1" {
		t.Fatalf("unexpected tx id %q", txID)
	}
}

func TestSendTokenBuildsTransferCalldata(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		tx, ok := params[0].(map[string]any)
		if !ok {
			t.Fatalf("unexpected tx payload %+v", params[0])
		}
		if tx["to"] != "0x000000000000000000000000000000000000beef" {
			t.Fatalf("expected the token contract as destination, got %v", tx["to"])
		}
		data, _ := tx["data"].(string)
		if !strings.HasPrefix(data, "0x"+erc20TransferSelector) {
			t.Fatalf("expected transfer selector, got %q", data)
		}
		if !strings.Contains(data, "cafe000000000000000000000000000000000001") {
			t.Fatalf("expected recipient in calldata, got %q", data)
		}
		// 12.5 USDT with 6 decimals is 12500000 base units.
		if !strings.HasSuffix(data, "0000000000000000000000000000000000000000000000000000000000bebc20") {
			t.Fatalf("expected amount word in calldata, got %q", data)
		}
		return "0xevmtx2", ""
	})

	gateway := newTestEvmGateway(node)
	txID, appErr := gateway.SendToken(context.Background(), evmTestToken(), dto.PayoutRecipient{
		Address: "0xCAFE000000000000000000000000000000000001",
		Amount:  decimal.RequireFromString("12.5"),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if txID != "0xevmtx2" {
		t.Fatalf("unexpected tx id %q", txID)
	}
}

func TestSendTokenFailsWithoutContractConfig(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		t.Fatalf("unexpected rpc call %q", method)
		return nil, ""
	})

	gateway := newTestEvmGateway(node)
	unknown := evmTestToken()
	unknown.Name = "PEPE"
	_, appErr := gateway.SendToken(context.Background(), unknown, dto.PayoutRecipient{
		Address: "0xcafe000000000000000000000000000000000001",
		Amount:  decimal.NewFromInt(1),
	})
	if appErr == nil || !appErr.IsType(apperrors.TypeValidation) {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
	if appErr.Code != "evm_token_contract_unknown" {
		t.Fatalf("unexpected error code %q", appErr.Code)
	}
}

func TestGetPayoutCompletionPendingWhileReceiptMissing(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		return nil, ""
	})

	gateway := newTestEvmGateway(node)
	completion, appErr := gateway.GetPayoutCompletion(context.Background(), "0xevmtx1")
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if completion.Complete {
		t.Fatal("expected incomplete while receipt missing")
	}
}

func TestGetPayoutCompletionComputesFeeFromReceipt(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		return map[string]any{
			"status":            "0x1",
			"blockNumber":       "0x10",
			"gasUsed":           "0x5208",
			"effectiveGasPrice": "0x77359400",
		}, ""
	})

	gateway := newTestEvmGateway(node)
	completion, appErr := gateway.GetPayoutCompletion(context.Background(), "0xevmtx1")
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !completion.Complete {
		t.Fatal("expected complete")
	}
	// 21000 gas at 2 gwei
	if !completion.FeeAmount.Equal(decimal.RequireFromString("0.000042")) {
		t.Fatalf("expected fee 0.000042, got %s", completion.FeeAmount)
	}
}

func TestGetPayoutCompletionSurfacesRevertedTransactions(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		return map[string]any{
			"status":            "0x0",
			"blockNumber":       "0x10",
			"gasUsed":           "0x5208",
			"effectiveGasPrice": "0x77359400",
		}, ""
	})

	gateway := newTestEvmGateway(node)
	_, appErr := gateway.GetPayoutCompletion(context.Background(), "0xevmtx1")
	if appErr == nil || appErr.Code != "evm_transaction_reverted" {
		t.Fatalf("expected revert error, got %+v", appErr)
	}
}

func TestGetTokenLiquidityDecodesBalanceOfWord(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		if method != "eth_call" {
			t.Fatalf("unexpected method %q", method)
		}
		call, _ := params[0].(map[string]any)
		data, _ := call["data"].(string)
		if !strings.HasPrefix(data, "0x"+erc20BalanceOfSelector) {
			t.Fatalf("expected balanceOf selector, got %q", data)
		}
		// 3000000 base units, padded to an ABI word.
		return "0x00000000000000000000000000000000000000000000000000000000002dc6c0", ""
	})

	gateway := newTestEvmGateway(node)
	liquidity, appErr := gateway.GetTokenLiquidity(context.Background(), evmTestToken())
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if !liquidity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected 3 tokens, got %s", liquidity)
	}
}

func TestSendNativeCoinRejectsMalformedAddress(t *testing.T) {
	node := newFakeNode(t, func(method string, params []any) (any, string) {
		t.Fatalf("unexpected rpc call %q", method)
		return nil, ""
	})

	gateway := newTestEvmGateway(node)
	_, appErr := gateway.SendNativeCoin(context.Background(), dto.PayoutRecipient{
		Address: "not-an-address",
		Amount:  decimal.NewFromInt(1),
	})
	if appErr == nil || !appErr.IsType(apperrors.TypeValidation) {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
	if appErr.Code != "evm_address_invalid" {
		t.Fatalf("unexpected error code %q", appErr.Code)
	}
}
