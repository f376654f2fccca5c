// Package helpers provides shared response and request helpers for the REST
// handlers. They are used by the stdlib, Gin and Chi routes to ensure
// consistent behavior.
package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/encoding"
)

// MaxSessionBytes bounds the size of a session request body.
const MaxSessionBytes = 1 << 20

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure only truncates the body.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// ReadSession decodes a JSON object session from the request body.
//
// Returns encoding.ErrEmptySession for a blank body, and an error for bodies
// that are not a JSON object or exceed MaxSessionBytes.
func ReadSession(r *http.Request) (txkit.Session, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxSessionBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxSessionBytes {
		return nil, fmt.Errorf("session exceeds %d bytes", MaxSessionBytes)
	}

	session, err := encoding.DecodeSession(string(body))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session must be a JSON object")
	}
	return session, nil
}
