package chain

import (
	"fmt"
	"math/big"
	"strings"

	apperrors "payoutd/internal/shared_kernel/errors"

	"github.com/shopspring/decimal"
)

// parseHexQuantity decodes an EVM 0x-prefixed hex quantity into a decimal
// integer value.
func parseHexQuantity(raw string) (decimal.Decimal, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
		return decimal.Zero, apperrors.NewBackend(
			"evm_hex_quantity_invalid",
			"hex quantity is missing the 0x prefix",
			map[string]any{"value": raw},
		)
	}

	value, ok := new(big.Int).SetString(trimmed[2:], 16)
	if !ok {
		return decimal.Zero, apperrors.NewBackend(
			"evm_hex_quantity_invalid",
			"hex quantity is not parseable",
			map[string]any{"value": raw},
		)
	}

	return decimal.NewFromBigInt(value, 0), nil
}

// baseUnitsToAmount shifts an integer base-unit value down by the asset's
// decimals (wei to coin, token base units to token amount).
func baseUnitsToAmount(baseUnits decimal.Decimal, decimals int32) decimal.Decimal {
	return baseUnits.Shift(-decimals)
}

// amountToHexBaseUnits shifts an amount up by the asset's decimals and
// encodes it as a 0x-prefixed hex quantity. The shifted value must be an
// integer; dispatch amounts are validated upstream.
func amountToHexBaseUnits(amount decimal.Decimal, decimals int32) (string, *apperrors.AppError) {
	shifted := amount.Shift(decimals)
	if !shifted.IsInteger() {
		return "", apperrors.NewValidation(
			"evm_amount_precision_invalid",
			"amount has more precision than the asset supports",
			map[string]any{"amount": amount.String(), "decimals": decimals},
		)
	}

	return fmt.Sprintf("0x%x", shifted.BigInt()), nil
}

// leftPad32 pads a hex string (no prefix) to a 32-byte ABI word.
func leftPad32(hexValue string) string {
	const word = 64
	if len(hexValue) >= word {
		return hexValue
	}
	return strings.Repeat("0", word-len(hexValue)) + hexValue
}
