package nft

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/memo"
)

// Fetcher holds the most recently fetched NFT list for one consumer.
//
// Every dependency change (Start, SetChainID, SetProvider, Refresh) starts a
// new fetch cycle. Starting a cycle cancels the context of the previous one
// and bumps a generation counter; a cycle commits its result only if its
// generation is still current, so a slow response for an old chain never
// overwrites the list for the new one. Failed cycles leave the list as is.
type Fetcher struct {
	logger   *slog.Logger
	onUpdate func(chainID int64, collections []txkit.NFTCollection)
	timeout  time.Duration

	mu          sync.Mutex
	base        context.Context
	stop        context.CancelFunc
	provider    txkit.ClientProvider
	chainID     int64
	generation  uint64
	cancel      context.CancelFunc
	collections memo.Deep[[]txkit.NFTCollection]
	commits     uint64
	inflight    int
	idle        *sync.Cond
	started     bool
	closed      bool

	// notifyMu orders onUpdate calls; notified is the last commit delivered.
	notifyMu sync.Mutex
	notified uint64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithChainID sets the initial chain. Non-positive values select txkit.DefaultChainID.
func WithChainID(chainID int64) Option {
	return func(f *Fetcher) {
		f.chainID = normalizeChainID(chainID)
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithTimeout bounds each fetch cycle. Zero means no bound beyond the
// context passed to Start.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithOnUpdate registers fn to be called after a cycle commits a list that
// differs structurally from the previous one. fn runs on the cycle's goroutine.
// Calls never overlap and arrive in commit order; a commit superseded before
// its call is skipped.
func WithOnUpdate(fn func(chainID int64, collections []txkit.NFTCollection)) Option {
	return func(f *Fetcher) {
		f.onUpdate = fn
	}
}

// NewFetcher creates a fetcher over provider. No cycle runs until Start.
func NewFetcher(provider txkit.ClientProvider, opts ...Option) *Fetcher {
	f := &Fetcher{
		provider: provider,
		chainID:  txkit.DefaultChainID,
	}
	f.idle = sync.NewCond(&f.mu)
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Start runs the first fetch cycle. Cycles inherit ctx; cancelling it stops
// in-flight requests. Calling Start again is a no-op.
func (f *Fetcher) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started || f.closed {
		return
	}
	f.started = true
	f.base, f.stop = context.WithCancel(ctx)
	f.restartLocked()
}

// SetChainID switches to chainID and, once started, starts a new cycle if
// the chain changed. Non-positive values select txkit.DefaultChainID.
func (f *Fetcher) SetChainID(chainID int64) {
	chainID = normalizeChainID(chainID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if chainID == f.chainID {
		return
	}
	f.chainID = chainID
	if f.started && !f.closed {
		f.restartLocked()
	}
}

// SetProvider replaces the client provider and, once started, starts a new cycle.
func (f *Fetcher) SetProvider(provider txkit.ClientProvider) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.provider = provider
	if f.started && !f.closed {
		f.restartLocked()
	}
}

// Refresh starts a new cycle for the current chain.
func (f *Fetcher) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started && !f.closed {
		f.restartLocked()
	}
}

// Collections returns the last committed list, or nil before the first
// successful fetch. The slice is shared between calls and must not be modified.
func (f *Fetcher) Collections() []txkit.NFTCollection {
	v, _ := f.collections.Current()
	return v
}

// ChainID returns the chain of the current cycle.
func (f *Fetcher) ChainID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chainID
}

// Wait blocks until no cycle is in flight. It may run concurrently with
// dependency changes; cycles started while waiting are waited for too.
func (f *Fetcher) Wait() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.inflight > 0 {
		f.idle.Wait()
	}
}

// Close cancels in-flight cycles and stops committing results. Close does not wait.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.generation++
	if f.stop != nil {
		f.stop()
	}
}

// restartLocked starts a new cycle; f.mu must be held.
func (f *Fetcher) restartLocked() {
	if f.cancel != nil {
		f.cancel()
	}
	f.generation++

	var ctx context.Context
	var cancel context.CancelFunc
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(f.base, f.timeout)
	} else {
		ctx, cancel = context.WithCancel(f.base)
	}
	f.cancel = cancel

	gen, provider, chainID := f.generation, f.provider, f.chainID
	f.inflight++
	go f.run(ctx, cancel, gen, provider, chainID)
}

func (f *Fetcher) run(ctx context.Context, cancel context.CancelFunc, gen uint64, provider txkit.ClientProvider, chainID int64) {
	defer f.done()
	defer cancel()

	items, err := Fetch(ctx, provider, chainID)
	if errors.Is(err, txkit.ErrNoClient) {
		f.logger.Debug("no account client for chain, skipping nft fetch", "chainId", chainID)
		return
	}
	if err != nil {
		if !f.current(gen) {
			return
		}
		account := ""
		var fe *FetchError
		if errors.As(err, &fe) {
			account = fe.Account
		}
		f.logger.Warn("failed to fetch nfts", "account", account, "chainId", chainID, "error", err)
		return
	}

	f.mu.Lock()
	if gen != f.generation || f.closed {
		f.mu.Unlock()
		return
	}
	if items == nil {
		items = []txkit.NFTCollection{}
	}
	prev, _ := f.collections.Current()
	next := f.collections.Value(items)
	changed := !sameSlice(prev, next)
	if changed {
		f.commits++
	}
	seq := f.commits
	f.mu.Unlock()

	if changed && f.onUpdate != nil {
		f.notify(seq, chainID, next)
	}
}

// notify delivers commit seq unless a later commit was already delivered.
func (f *Fetcher) notify(seq uint64, chainID int64, collections []txkit.NFTCollection) {
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()

	if seq <= f.notified {
		return
	}
	f.notified = seq
	f.onUpdate(chainID, collections)
}

func (f *Fetcher) done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inflight--
	if f.inflight == 0 {
		f.idle.Broadcast()
	}
}

func (f *Fetcher) current(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return gen == f.generation && !f.closed
}

func normalizeChainID(chainID int64) int64 {
	if chainID <= 0 {
		return txkit.DefaultChainID
	}
	return chainID
}

// sameSlice reports whether a and b share the same backing array and length.
func sameSlice(a, b []txkit.NFTCollection) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
