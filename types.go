package txkit

// Session is the opaque authentication/state blob the wallet SDK persists
// per wallet address. Its structure is owned by the SDK.
type Session map[string]any

// AccountType discriminates an owner key from a resolved smart-contract account.
type AccountType string

const (
	// AccountTypeKey is an externally owned key whose smart account has not been resolved.
	AccountTypeKey AccountType = "key"

	// AccountTypeContract is a smart-contract account with a resolved address.
	AccountTypeContract AccountType = "contract"
)

// Account is the current account state of an AccountClient.
type Account struct {
	// Address is the hex-encoded account address.
	Address string `json:"address"`

	// Type is the account kind.
	Type AccountType `json:"type"`
}

// IsContract reports whether the account has been resolved to a contract account.
func (a Account) IsContract() bool {
	return a.Type == AccountTypeContract
}

// NFT is a single token within a collection.
type NFT struct {
	// TokenID is the decimal token identifier.
	TokenID string `json:"tokenId"`

	// Name is the token's display name, if any.
	Name string `json:"name,omitempty"`

	// Amount is the number of units held (1 for ERC-721).
	Amount int64 `json:"amount"`

	// Image is a URL of the token artwork, if any.
	Image string `json:"image,omitempty"`
}

// NFTCollection groups the tokens an account holds from one contract.
type NFTCollection struct {
	// ContractName is the collection's on-chain name.
	ContractName string `json:"contractName"`

	// ContractAddress is the collection contract address.
	ContractAddress string `json:"contractAddress"`

	// ContractSymbol is the collection's on-chain symbol.
	ContractSymbol string `json:"contractSymbol,omitempty"`

	// Items are the tokens held by the account.
	Items []NFT `json:"items"`
}
