package evm

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	txkit "github.com/etherspot/transaction-kit-go"
)

// WithKeystore loads the owner key from an encrypted keystore file in the
// format written by geth. When the file records an address it must match the
// decrypted key.
func WithKeystore(path, password string) ClientOption {
	return func(c *Client) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", txkit.ErrInvalidKeystore, err)
		}

		key, err := keystore.DecryptKey(data, password)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", txkit.ErrInvalidKeystore, filepath.Base(path), err)
		}

		var header struct {
			Address string `json:"address"`
		}
		if err := json.Unmarshal(data, &header); err == nil && header.Address != "" {
			if recorded := common.HexToAddress(header.Address); recorded != key.Address {
				return fmt.Errorf("%w: %s records address %s but holds the key for %s",
					txkit.ErrInvalidKeystore, filepath.Base(path), recorded.Hex(), key.Address.Hex())
			}
		}

		c.privateKey = key.PrivateKey
		return nil
	}
}

// WithMnemonic derives the owner key from a BIP-39 mnemonic phrase.
// Derivation path: m/44'/60'/0'/0/{accountIndex}
func WithMnemonic(mnemonic string, accountIndex uint32) ClientOption {
	return func(c *Client) error {
		if !bip39.IsMnemonicValid(mnemonic) {
			return txkit.ErrInvalidMnemonic
		}

		seed := bip39.NewSeed(mnemonic, "")
		privateKey, err := deriveEthereumKey(seed, accountIndex)
		if err != nil {
			return fmt.Errorf("%w: %v", txkit.ErrInvalidMnemonic, err)
		}

		c.privateKey = privateKey
		return nil
	}
}

// bip44Path is m/44'/60'/0'/0 expressed as child indexes.
var bip44Path = []uint32{
	bip32.FirstHardenedChild + 44,
	bip32.FirstHardenedChild + 60,
	bip32.FirstHardenedChild + 0,
	0,
}

func deriveEthereumKey(seed []byte, index uint32) (*ecdsa.PrivateKey, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	for _, child := range append(bip44Path, index) {
		key, err = key.NewChildKey(child)
		if err != nil {
			return nil, err
		}
	}

	return crypto.ToECDSA(key.Key)
}
