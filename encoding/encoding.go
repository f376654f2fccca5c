// Package encoding provides the text encodings used to persist and transport
// txkit data. Sessions are stored as JSON text; NFT lists are rendered as JSON
// for tool and CLI output.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	txkit "github.com/etherspot/transaction-kit-go"
)

// ErrEmptySession indicates the stored session text is empty, the state a
// reset leaves behind.
var ErrEmptySession = errors.New("empty session")

// EncodeSession converts a Session to JSON text.
//
// Returns an error if JSON marshaling fails.
func EncodeSession(session txkit.Session) (string, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return string(data), nil
}

// DecodeSession converts JSON text to a Session.
// A JSON null decodes to a nil Session without error. Numbers decode as
// json.Number so integers beyond float64 precision keep every digit.
//
// Returns ErrEmptySession for blank text and an error if the text is not a JSON object.
func DecodeSession(text string) (txkit.Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySession
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var session txkit.Session
	if err := dec.Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("failed to unmarshal session: trailing data")
	}
	return session, nil
}

// EncodeCollections converts an NFT collection list to indented JSON text.
// A nil list encodes as an empty JSON array.
//
// Returns an error if JSON marshaling fails.
func EncodeCollections(collections []txkit.NFTCollection) (string, error) {
	if collections == nil {
		collections = []txkit.NFTCollection{}
	}
	data, err := json.MarshalIndent(collections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal collections: %w", err)
	}
	return string(data), nil
}

// DecodeCollections converts JSON text to an NFT collection list.
//
// Returns an error if JSON unmarshaling fails.
func DecodeCollections(text string) ([]txkit.NFTCollection, error) {
	var collections []txkit.NFTCollection
	if err := json.Unmarshal([]byte(text), &collections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections: %w", err)
	}
	return collections, nil
}
