package chainaddress

import (
	"fmt"
	"strings"
)

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const base58Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var bech32HumanReadableParts = []string{"bc", "tb", "bcrt"}

// ValidateBitcoinAddress runs a format-level check on a UTXO-chain address:
// bech32 prefix and charset for segwit forms, base58 charset for legacy
// forms. Checksum verification is left to the wallet node.
func ValidateBitcoinAddress(address string) error {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return fmt.Errorf("address is empty")
	}
	if trimmed != address {
		return fmt.Errorf("address %q has surrounding whitespace", address)
	}

	lowered := strings.ToLower(trimmed)
	for _, hrp := range bech32HumanReadableParts {
		if strings.HasPrefix(lowered, hrp+"1") {
			return validateBech32Data(address, lowered[len(hrp)+1:])
		}
	}

	return validateBase58(address, trimmed)
}

func validateBech32Data(address, data string) error {
	if len(data) < 6 {
		return fmt.Errorf("address %q bech32 data part is too short", address)
	}
	for _, c := range data {
		if !strings.ContainsRune(bech32Charset, c) {
			return fmt.Errorf("address %q contains invalid bech32 character %q", address, c)
		}
	}
	return nil
}

func validateBase58(address, trimmed string) error {
	switch trimmed[0] {
	case '1', '3', '2', 'm', 'n':
	default:
		return fmt.Errorf("address %q has an unrecognized prefix", address)
	}
	if len(trimmed) < 26 || len(trimmed) > 35 {
		return fmt.Errorf("address %q has an invalid base58 length", address)
	}
	for _, c := range trimmed {
		if !strings.ContainsRune(base58Charset, c) {
			return fmt.Errorf("address %q contains invalid base58 character %q", address, c)
		}
	}
	return nil
}

// ValidateLedgerAccount checks a token-ledger account identifier: base58
// characters only, within the lengths the ledger issues.
func ValidateLedgerAccount(address string) error {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return fmt.Errorf("account is empty")
	}
	if trimmed != address {
		return fmt.Errorf("account %q has surrounding whitespace", address)
	}
	if len(trimmed) < 8 || len(trimmed) > 64 {
		return fmt.Errorf("account %q has an invalid length", address)
	}
	for _, c := range trimmed {
		if !strings.ContainsRune(base58Charset, c) {
			return fmt.Errorf("account %q contains invalid character %q", address, c)
		}
	}
	return nil
}
