// Package session implements txkit.SessionStorage on top of a string
// key-value store. Sessions are kept per wallet address under the key
// "session-prime-<address>" as JSON text. Resetting a session writes an empty
// value rather than deleting the key.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/encoding"
)

// KeyPrefix namespaces session keys in the backing store.
const KeyPrefix = "session-prime-"

// Key returns the storage key for address.
func Key(address string) string {
	return KeyPrefix + address
}

// KeyValueStore is a string key-value store backing a Store.
type KeyValueStore interface {
	// Get returns the value stored under key and whether the key exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// Store implements txkit.SessionStorage over a KeyValueStore.
//
// Writes report encoding and backend errors to the caller. Reads never fail:
// a missing, reset, corrupted or unreadable entry all read as no session.
type Store struct {
	kv     KeyValueStore
	logger *slog.Logger
}

var _ txkit.SessionStorage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for read-path diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store backed by kv.
func NewStore(kv KeyValueStore, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SetSession implements txkit.SessionStorage.
func (s *Store) SetSession(ctx context.Context, address string, session txkit.Session) error {
	if address == "" {
		return nil
	}

	text, err := encoding.EncodeSession(session)
	if err != nil {
		return fmt.Errorf("set session for %s: %w", address, err)
	}

	if err := s.kv.Set(ctx, Key(address), text); err != nil {
		return fmt.Errorf("set session for %s: %w", address, err)
	}
	return nil
}

// GetSession implements txkit.SessionStorage. The returned error is always nil.
func (s *Store) GetSession(ctx context.Context, address string) (txkit.Session, error) {
	if address == "" {
		return nil, nil
	}

	text, ok, err := s.kv.Get(ctx, Key(address))
	if err != nil {
		s.logger.Warn("failed to read session", "address", address, "error", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	session, err := encoding.DecodeSession(text)
	if err != nil {
		if !errors.Is(err, encoding.ErrEmptySession) {
			s.logger.Debug("discarding unreadable session", "address", address, "error", err)
		}
		return nil, nil
	}
	return session, nil
}

// ResetSession implements txkit.SessionStorage. The key is kept with an empty value.
func (s *Store) ResetSession(ctx context.Context, address string) error {
	if address == "" {
		return nil
	}

	if err := s.kv.Set(ctx, Key(address), ""); err != nil {
		return fmt.Errorf("reset session for %s: %w", address, err)
	}
	return nil
}
