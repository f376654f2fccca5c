// Package txkit provides the shared types, capability contracts and helpers
// used to integrate an account-abstraction wallet SDK into an application:
// session storage, per-chain account clients, chain configurations, error
// message formatting and gated debug logging.
//
// Concrete implementations live in subpackages: session (storage adapters),
// evm (smart-account clients), nft (NFT fetcher), dataservice (NFT data API).
package txkit

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultChainID is the chain used when none is specified (Ethereum mainnet).
const DefaultChainID int64 = 1

// ChainConfig describes an EVM chain supported by the kit.
type ChainConfig struct {
	// ChainID is the EIP-155 chain identifier.
	ChainID int64

	// Name is the short chain name (e.g., "polygon", "base-sepolia").
	Name string

	// NativeSymbol is the symbol of the chain's native currency.
	NativeSymbol string

	// Testnet marks test networks.
	Testnet bool
}

// Mainnet chain configurations
var (
	// Ethereum is the configuration for Ethereum mainnet.
	Ethereum = ChainConfig{ChainID: 1, Name: "ethereum", NativeSymbol: "ETH"}

	// Polygon is the configuration for Polygon PoS mainnet.
	Polygon = ChainConfig{ChainID: 137, Name: "polygon", NativeSymbol: "POL"}

	// Optimism is the configuration for OP mainnet.
	Optimism = ChainConfig{ChainID: 10, Name: "optimism", NativeSymbol: "ETH"}

	// Arbitrum is the configuration for Arbitrum One.
	Arbitrum = ChainConfig{ChainID: 42161, Name: "arbitrum", NativeSymbol: "ETH"}

	// Base is the configuration for Base mainnet.
	Base = ChainConfig{ChainID: 8453, Name: "base", NativeSymbol: "ETH"}
)

// Testnet chain configurations
var (
	// Sepolia is the configuration for the Ethereum Sepolia testnet.
	Sepolia = ChainConfig{ChainID: 11155111, Name: "sepolia", NativeSymbol: "ETH", Testnet: true}

	// PolygonAmoy is the configuration for the Polygon Amoy testnet.
	PolygonAmoy = ChainConfig{ChainID: 80002, Name: "polygon-amoy", NativeSymbol: "POL", Testnet: true}

	// BaseSepolia is the configuration for the Base Sepolia testnet.
	BaseSepolia = ChainConfig{ChainID: 84532, Name: "base-sepolia", NativeSymbol: "ETH", Testnet: true}
)

var knownChains = []ChainConfig{
	Ethereum, Polygon, Optimism, Arbitrum, Base,
	Sepolia, PolygonAmoy, BaseSepolia,
}

// Chains returns all built-in chain configurations.
func Chains() []ChainConfig {
	out := make([]ChainConfig, len(knownChains))
	copy(out, knownChains)
	return out
}

// ChainByID looks up a built-in chain configuration by chain id.
func ChainByID(chainID int64) (ChainConfig, error) {
	for _, c := range knownChains {
		if c.ChainID == chainID {
			return c, nil
		}
	}
	return ChainConfig{}, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
}

// ChainByName looks up a built-in chain configuration by name (case-insensitive).
func ChainByName(name string) (ChainConfig, error) {
	for _, c := range knownChains {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return ChainConfig{}, fmt.Errorf("%w: %s", ErrUnsupportedChain, name)
}

// ParseChainID parses a chain reference that is either a positive decimal id
// or a built-in chain name. An empty string yields DefaultChainID.
func ParseChainID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultChainID, nil
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidChainID, id)
		}
		return id, nil
	}
	c, err := ChainByName(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidChainID, s)
	}
	return c.ChainID, nil
}
