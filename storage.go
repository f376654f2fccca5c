package txkit

import "context"

// SessionStorage is the persistence capability the wallet SDK uses to keep
// session state across reconnects. Implementations decide where sessions live.
type SessionStorage interface {
	// SetSession stores session for address, replacing any previous value.
	// An empty address is a no-op.
	SetSession(ctx context.Context, address string, session Session) error

	// GetSession returns the session stored for address, or nil when there is
	// none or the stored value is unusable.
	GetSession(ctx context.Context, address string) (Session, error)

	// ResetSession clears the session stored for address.
	ResetSession(ctx context.Context, address string) error
}
