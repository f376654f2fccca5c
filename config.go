package txkit

import (
	"errors"
	"time"
)

// TimeoutConfig bounds the time spent talking to remote services.
type TimeoutConfig struct {
	// RequestTimeout bounds a single HTTP request to the data API.
	RequestTimeout time.Duration

	// FetchTimeout bounds a whole fetch cycle, connect and retries included.
	FetchTimeout time.Duration
}

// DefaultTimeouts are the timeouts used when none are configured.
var DefaultTimeouts = TimeoutConfig{
	RequestTimeout: 30 * time.Second,
	FetchTimeout:   60 * time.Second,
}

// Validate checks that both timeouts are positive and that a fetch cycle
// can outlast a single request.
func (c TimeoutConfig) Validate() error {
	if c.RequestTimeout <= 0 {
		return errors.New("txkit: request timeout must be positive")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("txkit: fetch timeout must be positive")
	}
	if c.FetchTimeout < c.RequestTimeout {
		return errors.New("txkit: fetch timeout must be at least the request timeout")
	}
	return nil
}

// WithRequestTimeout returns a copy of c with RequestTimeout set.
func (c TimeoutConfig) WithRequestTimeout(d time.Duration) TimeoutConfig {
	c.RequestTimeout = d
	return c
}

// WithFetchTimeout returns a copy of c with FetchTimeout set.
func (c TimeoutConfig) WithFetchTimeout(d time.Duration) TimeoutConfig {
	c.FetchTimeout = d
	return c
}
