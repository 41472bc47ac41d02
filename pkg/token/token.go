package token

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

// Type identifies which launchpad family a token address belongs to.
// The address format alone determines chain-specific behavior downstream.
type Type string

const (
	TypePumpfun  Type = "pumpfun"  // Solana mint, base58, 32-44 chars
	TypeFourmeme Type = "fourmeme" // BSC contract, 0x + 40 hex chars
)

// Detect classifies a token address by format and rejects malformed input
// before any network call is made.
func Detect(addr string) (Type, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("token address is required")
	}

	if strings.HasPrefix(addr, "0x") {
		if len(addr) != 42 || !common.IsHexAddress(addr) {
			return "", fmt.Errorf("invalid BSC address %q: expected 0x followed by 40 hex characters", addr)
		}
		return TypeFourmeme, nil
	}

	if len(addr) < 32 || len(addr) > 44 {
		return "", fmt.Errorf("invalid address %q: BSC addresses start with 0x (42 chars), Solana addresses are 32-44 base58 chars", addr)
	}
	if _, err := solana.PublicKeyFromBase58(addr); err != nil {
		return "", fmt.Errorf("invalid Solana address %q: %w", addr, err)
	}
	return TypePumpfun, nil
}

// ValidateSolana checks a standalone Solana account address (e.g. a manually
// supplied bonding curve).
func ValidateSolana(addr string) error {
	addr = strings.TrimSpace(addr)
	if len(addr) < 32 || len(addr) > 44 {
		return fmt.Errorf("invalid Solana address %q: expected 32-44 base58 chars", addr)
	}
	if _, err := solana.PublicKeyFromBase58(addr); err != nil {
		return fmt.Errorf("invalid Solana address %q: %w", addr, err)
	}
	return nil
}
