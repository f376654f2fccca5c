package txkit

import "errors"

// Standard txkit error definitions

var (
	// ErrInvalidAddress indicates a wallet or contract address is empty or malformed.
	ErrInvalidAddress = errors.New("txkit: invalid address")

	// ErrNoClient indicates no account client is registered for the requested chain.
	ErrNoClient = errors.New("txkit: no account client for chain")

	// ErrInvalidKey indicates the owner private key could not be parsed.
	ErrInvalidKey = errors.New("txkit: invalid private key")

	// ErrInvalidKeystore indicates the keystore file could not be read or decrypted.
	ErrInvalidKeystore = errors.New("txkit: invalid keystore file")

	// ErrInvalidMnemonic indicates the BIP-39 mnemonic phrase is invalid.
	ErrInvalidMnemonic = errors.New("txkit: invalid mnemonic phrase")

	// ErrNoAccountFactory indicates no smart-account factory is configured for the client.
	ErrNoAccountFactory = errors.New("txkit: no account factory configured")

	// ErrNoNFTSource indicates the client has nowhere to list NFTs from.
	ErrNoNFTSource = errors.New("txkit: no NFT source configured")

	// ErrInvalidChainID indicates a chain identifier is missing or not a positive integer.
	ErrInvalidChainID = errors.New("txkit: invalid chain id")

	// ErrUnsupportedChain indicates the chain is not known to this package.
	ErrUnsupportedChain = errors.New("txkit: unsupported chain")
)
