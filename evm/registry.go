package evm

import (
	"slices"
	"sync"

	txkit "github.com/etherspot/transaction-kit-go"
)

// Registry is a txkit.ClientProvider holding one client per chain.
type Registry struct {
	mu      sync.RWMutex
	clients map[int64]txkit.AccountClient
}

var _ txkit.ClientProvider = (*Registry)(nil)

// NewRegistry returns a registry populated with clients, keyed by their chain id.
func NewRegistry(clients ...*Client) *Registry {
	r := &Registry{clients: make(map[int64]txkit.AccountClient)}
	for _, c := range clients {
		r.Register(c.ChainID(), c)
	}
	return r
}

// Register sets the client for chainID, replacing any previous one.
func (r *Registry) Register(chainID int64, client txkit.AccountClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[chainID] = client
}

// Client implements txkit.ClientProvider.
func (r *Registry) Client(chainID int64) (txkit.AccountClient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[chainID]
	return c, ok
}

// ChainIDs returns the registered chain ids in ascending order.
func (r *Registry) ChainIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
