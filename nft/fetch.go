// Package nft exposes the NFT collections of the connected account on a
// chain. Fetch runs a single connect-then-list cycle; Fetcher keeps the
// latest successful result for a consumer and re-runs the cycle whenever its
// chain or client provider changes, discarding results of superseded cycles.
package nft

import (
	"context"
	"fmt"

	txkit "github.com/etherspot/transaction-kit-go"
)

// FetchError reports a failed connect or list step together with the
// account and chain it was attempted for.
type FetchError struct {
	// ChainID is the chain the cycle ran for.
	ChainID int64

	// Account is the account address known when the step failed.
	Account string

	// Op is "connect" or "list".
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("nft %s on chain %d for %s: %v", e.Op, e.ChainID, e.Account, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetch resolves the client for chainID, connects its account if it is not
// yet a contract account, and lists the NFTs of the resolved address.
//
// It returns an error wrapping txkit.ErrNoClient, without calling anything,
// when the provider has no client for the chain. Connect and list failures
// are returned as *FetchError.
func Fetch(ctx context.Context, provider txkit.ClientProvider, chainID int64) ([]txkit.NFTCollection, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: %d", txkit.ErrNoClient, chainID)
	}
	client, ok := provider.Client(chainID)
	if !ok || client == nil {
		return nil, fmt.Errorf("%w: %d", txkit.ErrNoClient, chainID)
	}

	account := client.Account()
	if !account.IsContract() {
		connected, err := client.Connect(ctx)
		if err != nil {
			return nil, &FetchError{ChainID: chainID, Account: account.Address, Op: "connect", Err: err}
		}
		account = connected
	}

	items, err := client.GetNFTList(ctx, account.Address)
	if err != nil {
		return nil, &FetchError{ChainID: chainID, Account: account.Address, Op: "list", Err: err}
	}
	return items, nil
}
