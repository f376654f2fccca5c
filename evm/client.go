// Package evm provides a txkit.AccountClient for EVM chains backed by a
// counterfactual smart-contract account. The owner key is loaded from a hex
// private key, an encrypted keystore or a BIP-39 mnemonic; Connect resolves
// the smart account address deterministically with CREATE2.
package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/validation"
)

// NFTSource lists the NFTs held by an account on a chain.
// *dataservice.Client satisfies it.
type NFTSource interface {
	GetNFTList(ctx context.Context, chainID int64, account string) ([]txkit.NFTCollection, error)
}

// CodeReader reads contract code; *ethclient.Client satisfies it.
type CodeReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// Client implements txkit.AccountClient for a single EVM chain.
// It is safe for concurrent use.
type Client struct {
	privateKey   *ecdsa.PrivateKey
	owner        common.Address
	chainID      int64
	factory      *common.Address
	initCodeHash common.Hash
	index        uint64
	nfts         NFTSource
	code         CodeReader

	connectMu sync.Mutex

	mu       sync.RWMutex
	account  txkit.Account
	deployed bool
}

var _ txkit.AccountClient = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client) error

// NewClient creates a new EVM account client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{chainID: txkit.DefaultChainID}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.privateKey == nil {
		return nil, txkit.ErrInvalidKey
	}
	if c.chainID <= 0 {
		return nil, fmt.Errorf("%w: %d", txkit.ErrInvalidChainID, c.chainID)
	}

	c.owner = crypto.PubkeyToAddress(c.privateKey.PublicKey)
	c.account = txkit.Account{
		Address: c.owner.Hex(),
		Type:    txkit.AccountTypeKey,
	}
	return c, nil
}

// WithPrivateKey sets the owner key from a hex string.
func WithPrivateKey(hexKey string) ClientOption {
	return func(c *Client) error {
		hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")

		privateKey, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			return txkit.ErrInvalidKey
		}

		c.privateKey = privateKey
		return nil
	}
}

// WithChainID sets the chain the client operates on.
func WithChainID(chainID int64) ClientOption {
	return func(c *Client) error {
		c.chainID = chainID
		return nil
	}
}

// WithAccountFactory sets the smart-account factory address and the keccak256
// hash of the account init code used for CREATE2 address derivation.
func WithAccountFactory(factory, initCodeHash string) ClientOption {
	return func(c *Client) error {
		if err := validation.ValidateAddress(factory); err != nil {
			return fmt.Errorf("factory: %w", err)
		}
		if err := validation.ValidateHash(initCodeHash); err != nil {
			return fmt.Errorf("init code hash: %w", err)
		}

		addr := common.HexToAddress(factory)
		c.factory = &addr
		c.initCodeHash = common.HexToHash(initCodeHash)
		return nil
	}
}

// WithAccountIndex selects which smart account of the owner to use (default 0).
func WithAccountIndex(index uint64) ClientOption {
	return func(c *Client) error {
		c.index = index
		return nil
	}
}

// WithNFTSource sets where NFT lists are fetched from.
func WithNFTSource(source NFTSource) ClientOption {
	return func(c *Client) error {
		c.nfts = source
		return nil
	}
}

// WithCodeReader enables a deployed-code check during Connect.
func WithCodeReader(reader CodeReader) ClientOption {
	return func(c *Client) error {
		c.code = reader
		return nil
	}
}

// WithRPCURL dials an Ethereum JSON-RPC endpoint and uses it as the CodeReader.
func WithRPCURL(rawURL string) ClientOption {
	return func(c *Client) error {
		rpc, err := ethclient.Dial(rawURL)
		if err != nil {
			return fmt.Errorf("dial rpc: %w", err)
		}
		c.code = rpc
		return nil
	}
}

// Account implements txkit.AccountClient.
func (c *Client) Account() txkit.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

// Connect implements txkit.AccountClient. It derives the smart account
// address and, when a CodeReader is configured, records whether the account
// contract is already deployed.
func (c *Client) Connect(ctx context.Context) (txkit.Account, error) {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	if current := c.Account(); current.IsContract() {
		return current, nil
	}
	if c.factory == nil {
		return txkit.Account{}, txkit.ErrNoAccountFactory
	}

	addr := SmartAccountAddress(*c.factory, c.initCodeHash, c.owner, c.index)

	deployed := false
	if c.code != nil {
		code, err := c.code.CodeAt(ctx, addr, nil)
		if err != nil {
			return txkit.Account{}, fmt.Errorf("read account code: %w", err)
		}
		deployed = len(code) > 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = txkit.Account{
		Address: addr.Hex(),
		Type:    txkit.AccountTypeContract,
	}
	c.deployed = deployed
	return c.account, nil
}

// GetNFTList implements txkit.AccountClient.
func (c *Client) GetNFTList(ctx context.Context, address string) ([]txkit.NFTCollection, error) {
	if c.nfts == nil {
		return nil, txkit.ErrNoNFTSource
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", txkit.ErrInvalidAddress, address)
	}
	return c.nfts.GetNFTList(ctx, c.chainID, common.HexToAddress(address).Hex())
}

// Owner returns the owner key's address.
func (c *Client) Owner() common.Address {
	return c.owner
}

// ChainID returns the chain the client operates on.
func (c *Client) ChainID() int64 {
	return c.chainID
}

// Deployed reports whether Connect found contract code at the account address.
// It is always false without a CodeReader.
func (c *Client) Deployed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deployed
}

// SmartAccountAddress computes the CREATE2 address of the smart account the
// factory deploys for owner at index. The salt is keccak256(owner ‖ uint256(index)).
func SmartAccountAddress(factory common.Address, initCodeHash common.Hash, owner common.Address, index uint64) common.Address {
	indexBytes := common.LeftPadBytes(new(big.Int).SetUint64(index).Bytes(), 32)
	salt := crypto.Keccak256Hash(owner.Bytes(), indexBytes)
	return crypto.CreateAddress2(factory, salt, initCodeHash.Bytes())
}
