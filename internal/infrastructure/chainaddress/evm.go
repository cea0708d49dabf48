package chainaddress

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const evmAddressHexLength = 40

// NormalizeEvmAddress validates an account-chain address and returns it
// lowercased with the 0x prefix. Uniform-case addresses pass on format alone;
// mixed-case addresses must carry a valid EIP-55 checksum.
func NormalizeEvmAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
		return "", fmt.Errorf("address %q must start with 0x", address)
	}

	hexPart := trimmed[2:]
	if len(hexPart) != evmAddressHexLength {
		return "", fmt.Errorf("address %q must be %d hex characters", address, evmAddressHexLength)
	}

	hasUpper := false
	hasLower := false
	for _, c := range hexPart {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
			hasLower = true
		case c >= 'A' && c <= 'F':
			hasUpper = true
		default:
			return "", fmt.Errorf("address %q contains non-hex character %q", address, c)
		}
	}

	lowered := strings.ToLower(hexPart)
	if hasUpper && hasLower {
		if checksumEvmAddress(lowered) != hexPart {
			return "", fmt.Errorf("address %q failed checksum verification", address)
		}
	}

	return "0x" + lowered, nil
}

// checksumEvmAddress applies the EIP-55 casing to a lowercase hex address.
func checksumEvmAddress(lowered string) string {
	digest := legacyKeccak256([]byte(lowered))

	out := make([]byte, len(lowered))
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		if c >= 'a' && c <= 'f' {
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return string(out)
}

func legacyKeccak256(input []byte) [32]byte {
	hash := sha3.NewLegacyKeccak256()
	_, _ = hash.Write(input)
	sum := hash.Sum(nil)

	var out [32]byte
	copy(out[:], sum[:32])
	return out
}
