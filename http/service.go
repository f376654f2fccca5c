// Package http exposes session storage and NFT listing over REST.
//
// Service holds the handlers; Handler mounts them on a stdlib ServeMux.
// The chi and gin subpackages are thin adapters that extract path
// parameters with their router and delegate to the same Service methods.
//
// Routes:
//
//	GET    /sessions/{address}  200 session JSON, 404 when none is stored
//	PUT    /sessions/{address}  204 after storing the JSON object body
//	DELETE /sessions/{address}  204 after resetting the session
//	GET    /nfts?chainId=       200 collection list, 404 no client, 502 upstream failure
//
// With WithAuth, session routes answer 401 unless the request carries a
// bearer token issued for the address in the path.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/encoding"
	"github.com/etherspot/transaction-kit-go/http/internal/helpers"
	"github.com/etherspot/transaction-kit-go/nft"
	"github.com/etherspot/transaction-kit-go/validation"
)

// Service serves session and NFT requests from a session store and a
// client provider.
type Service struct {
	store    txkit.SessionStorage
	provider txkit.ClientProvider
	logger   *slog.Logger
	debugger *txkit.Debugger
	debug    bool
	auth     *SessionAuth
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for failures and debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDebug enables per-request debug records.
func WithDebug(debug bool) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// WithAuth requires a bearer token issued by auth for the requested address
// on every session route. NFT listing stays open.
func WithAuth(auth *SessionAuth) Option {
	return func(s *Service) {
		s.auth = auth
	}
}

// NewService creates a Service. A nil provider makes every NFT request
// answer 404.
func NewService(store txkit.SessionStorage, provider txkit.ClientProvider, opts ...Option) *Service {
	s := &Service{store: store, provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.debugger = txkit.NewDebugger(s.logger)
	return s
}

// Handler returns a stdlib handler serving all routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/{address}", func(w http.ResponseWriter, r *http.Request) {
		s.GetSession(w, r, r.PathValue("address"))
	})
	mux.HandleFunc("PUT /sessions/{address}", func(w http.ResponseWriter, r *http.Request) {
		s.PutSession(w, r, r.PathValue("address"))
	})
	mux.HandleFunc("DELETE /sessions/{address}", func(w http.ResponseWriter, r *http.Request) {
		s.DeleteSession(w, r, r.PathValue("address"))
	})
	mux.HandleFunc("GET /nfts", s.ListNFTs)
	return mux
}

// GetSession writes the session stored for address.
func (s *Service) GetSession(w http.ResponseWriter, r *http.Request, address string) {
	if err := validation.ValidateAddress(address); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.authorize(w, r, address) {
		return
	}

	session, err := s.store.GetSession(r.Context(), address)
	if err != nil {
		s.logger.Error("failed to read session", "address", address, "error", err)
		helpers.WriteError(w, http.StatusInternalServerError, txkit.ParseErrorMessage(err, "failed to read session"))
		return
	}
	if session == nil {
		helpers.WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	s.debugger.Log("session read", map[string]any{"address": address}, s.debug)
	helpers.WriteJSON(w, http.StatusOK, session)
}

// PutSession stores the JSON object in the request body as the session for address.
func (s *Service) PutSession(w http.ResponseWriter, r *http.Request, address string) {
	if err := validation.ValidateAddress(address); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.authorize(w, r, address) {
		return
	}

	session, err := helpers.ReadSession(r)
	if err != nil {
		if errors.Is(err, encoding.ErrEmptySession) {
			helpers.WriteError(w, http.StatusBadRequest, "session body is required")
			return
		}
		helpers.WriteError(w, http.StatusBadRequest, txkit.ParseErrorMessage(err, "invalid session body"))
		return
	}

	if err := s.store.SetSession(r.Context(), address, session); err != nil {
		s.logger.Error("failed to store session", "address", address, "error", err)
		helpers.WriteError(w, http.StatusInternalServerError, txkit.ParseErrorMessage(err, "failed to store session"))
		return
	}

	s.debugger.Log("session stored", map[string]any{"address": address, "keys": len(session)}, s.debug)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSession resets the session for address.
func (s *Service) DeleteSession(w http.ResponseWriter, r *http.Request, address string) {
	if err := validation.ValidateAddress(address); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.authorize(w, r, address) {
		return
	}

	if err := s.store.ResetSession(r.Context(), address); err != nil {
		s.logger.Error("failed to reset session", "address", address, "error", err)
		helpers.WriteError(w, http.StatusInternalServerError, txkit.ParseErrorMessage(err, "failed to reset session"))
		return
	}

	s.debugger.Log("session reset", map[string]any{"address": address}, s.debug)
	w.WriteHeader(http.StatusNoContent)
}

// ListNFTs runs one fetch cycle for the chain in the chainId query
// parameter (an id or a chain name; default chain when absent).
func (s *Service) ListNFTs(w http.ResponseWriter, r *http.Request) {
	chainID, err := txkit.ParseChainID(r.URL.Query().Get("chainId"))
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	collections, err := nft.Fetch(r.Context(), s.provider, chainID)
	if errors.Is(err, txkit.ErrNoClient) {
		helpers.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Warn("failed to fetch nfts", "chainId", chainID, "error", err)
		helpers.WriteError(w, http.StatusBadGateway, txkit.ParseErrorMessage(errors.Unwrap(err), "failed to fetch nfts"))
		return
	}

	if collections == nil {
		collections = []txkit.NFTCollection{}
	}
	s.debugger.Log("nfts listed", map[string]any{"chainId": chainID, "collections": len(collections)}, s.debug)
	helpers.WriteJSON(w, http.StatusOK, collections)
}

// authorize writes 401 and returns false when auth is enabled and the
// request is not authorized for address.
func (s *Service) authorize(w http.ResponseWriter, r *http.Request, address string) bool {
	if s.auth == nil {
		return true
	}
	if err := s.auth.Verify(r, address); err != nil {
		s.logger.Debug("rejected session request", "address", address, "error", err)
		w.Header().Set("WWW-Authenticate", `Bearer realm="sessions"`)
		helpers.WriteError(w, http.StatusUnauthorized, err.Error())
		return false
	}
	return true
}
