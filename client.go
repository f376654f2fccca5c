package txkit

import "context"

// AccountClient represents a per-chain wallet client backed by a smart account.
// Implementations resolve the account address and query account-scoped data.
type AccountClient interface {
	// Account returns the current account state.
	Account() Account

	// Connect resolves the smart-contract account for the owner and returns
	// the updated account state. Calling Connect on a connected client is a no-op.
	Connect(ctx context.Context) (Account, error)

	// GetNFTList lists the NFT collections held by address on the client's chain.
	GetNFTList(ctx context.Context, address string) ([]NFTCollection, error)
}

// ClientProvider resolves the AccountClient for a chain.
type ClientProvider interface {
	// Client returns the client for chainID, or false if none is available.
	Client(chainID int64) (AccountClient, bool)
}

// ClientProviderFunc adapts a function to the ClientProvider interface.
type ClientProviderFunc func(chainID int64) (AccountClient, bool)

// Client implements ClientProvider.
func (f ClientProviderFunc) Client(chainID int64) (AccountClient, bool) {
	return f(chainID)
}
