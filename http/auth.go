package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// TokenIssuer is the issuer claim of session tokens.
const TokenIssuer = "txkit"

var (
	// ErrMissingToken indicates that the request carries no bearer token
	ErrMissingToken = errors.New("missing bearer token")

	// ErrTokenSubject indicates that the token was issued for another address
	ErrTokenSubject = errors.New("token subject does not match address")
)

// SessionAuth issues and verifies HS256 bearer tokens that grant access to
// the session of a single address. The address is the token subject.
// SessionAuth is immutable after construction and safe for concurrent use.
type SessionAuth struct {
	secret []byte
	now    func() time.Time
}

// NewSessionAuth creates a SessionAuth with a shared secret of at least 32 bytes.
func NewSessionAuth(secret []byte) (*SessionAuth, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("auth secret must be at least 32 bytes, got %d", len(secret))
	}
	return &SessionAuth{secret: secret, now: time.Now}, nil
}

// IssueToken signs a token for address valid for ttl.
func (a *SessionAuth) IssueToken(address string, ttl time.Duration) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: a.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create signer: %w", err)
	}

	now := a.now()
	claims := jwt.Claims{
		Issuer:    TokenIssuer,
		Subject:   strings.ToLower(address),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.Signed(signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the request's bearer token and that it was issued for address.
func (a *SessionAuth) Verify(r *http.Request, address string) error {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return ErrMissingToken
	}

	token, err := jwt.ParseSigned(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("malformed token: %w", err)
	}
	for _, h := range token.Headers {
		if h.Algorithm != string(jose.HS256) {
			return fmt.Errorf("unsupported token algorithm %q", h.Algorithm)
		}
	}

	var claims jwt.Claims
	if err := token.Claims(a.secret, &claims); err != nil {
		return fmt.Errorf("invalid token signature: %w", err)
	}
	if err := claims.Validate(jwt.Expected{Issuer: TokenIssuer, Time: a.now()}); err != nil {
		return fmt.Errorf("invalid token claims: %w", err)
	}
	if !strings.EqualFold(claims.Subject, address) {
		return ErrTokenSubject
	}
	return nil
}
