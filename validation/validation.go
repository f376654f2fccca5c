// Package validation checks addresses, chain ids and endpoints received from
// callers before they reach a store or a remote API.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	txkit "github.com/etherspot/transaction-kit-go"
)

var (
	// evmAddressRegex matches Ethereum-style addresses (0x followed by 40 hex chars)
	evmAddressRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

	// hashRegex matches 32-byte hex values (0x followed by 64 hex chars)
	hashRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// ValidateAddress validates that address is a 0x-prefixed 20-byte hex string.
// Checksums are not enforced.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: address cannot be empty", txkit.ErrInvalidAddress)
	}
	if !evmAddressRegex.MatchString(address) {
		return fmt.Errorf("%w: %s (expected 0x followed by 40 hex characters)", txkit.ErrInvalidAddress, address)
	}
	return nil
}

// ValidateHash validates that hash is a 0x-prefixed 32-byte hex string.
func ValidateHash(hash string) error {
	if !hashRegex.MatchString(hash) {
		return fmt.Errorf("invalid hash format: %s (expected 0x followed by 64 hex characters)", hash)
	}
	return nil
}

// ValidateChainID validates that chainID is positive.
func ValidateChainID(chainID int64) error {
	if chainID <= 0 {
		return fmt.Errorf("%w: %d", txkit.ErrInvalidChainID, chainID)
	}
	return nil
}

// ValidateBaseURL validates that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", raw)
	}
	return nil
}
