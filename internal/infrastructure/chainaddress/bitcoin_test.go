//go:build !integration

package chainaddress

import "testing"

func TestValidateBitcoinAddressAcceptsKnownForms(t *testing.T) {
	for _, address := range []string{
		"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		"tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
		"bcrt1qshared",
		"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy",
		"mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn",
	} {
		if err := ValidateBitcoinAddress(address); err != nil {
			t.Fatalf("expected %s to validate, got %v", address, err)
		}
	}
}

func TestValidateBitcoinAddressRejectsMalformed(t *testing.T) {
	for _, address := range []string{
		"",
		" bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		"bcrt1qob",
		"bc1qoops",
		"xyz123",
		"1short",
	} {
		if err := ValidateBitcoinAddress(address); err == nil {
			t.Fatalf("expected %q to be rejected", address)
		}
	}
}

func TestValidateLedgerAccount(t *testing.T) {
	for _, account := range []string{"dAddrShared", "dTreasury1", "df1qabcdefgh"} {
		if err := ValidateLedgerAccount(account); err != nil {
			t.Fatalf("expected %s to validate, got %v", account, err)
		}
	}
	for _, account := range []string{"", "short", "has space123", "dAddrOther0"} {
		if err := ValidateLedgerAccount(account); err == nil {
			t.Fatalf("expected %q to be rejected", account)
		}
	}
}
