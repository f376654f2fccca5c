package encoding

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	txkit "github.com/etherspot/transaction-kit-go"
)

func TestEncodeDecodeSession(t *testing.T) {
	tests := []struct {
		name    string
		session txkit.Session
	}{
		{
			name:    "flat session",
			session: txkit.Session{"token": "abc", "expiresAt": json.Number("1700000000")},
		},
		{
			name: "nested session",
			session: txkit.Session{
				"account": map[string]any{"address": "0x1", "index": json.Number("0")},
				"scopes":  []any{"sign", "send"},
			},
		},
		{
			name:    "empty session",
			session: txkit.Session{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := EncodeSession(tt.session)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := DecodeSession(text)
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.session) {
				t.Errorf("session mismatch: got %v, want %v", got, tt.session)
			}
		})
	}
}

func TestEncodeSession_Unserializable(t *testing.T) {
	_, err := EncodeSession(txkit.Session{"ch": make(chan int)})
	if err == nil {
		t.Fatal("expected error for unserializable session")
	}
	if !strings.Contains(err.Error(), "failed to marshal session") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestDecodeSession_Errors(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantEmpty bool
	}{
		{"empty string", "", true},
		{"whitespace", "  \n", true},
		{"not json", "{not json", false},
		{"array", "[1,2]", false},
		{"string", `"session"`, false},
		{"trailing data", `{"a":1} {"b":2}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSession(tt.text)
			if err == nil {
				t.Fatalf("expected error, got session %v", got)
			}
			if got != nil {
				t.Errorf("expected nil session, got %v", got)
			}
			if errors.Is(err, ErrEmptySession) != tt.wantEmpty {
				t.Errorf("ErrEmptySession = %v, want %v (err: %v)", errors.Is(err, ErrEmptySession), tt.wantEmpty, err)
			}
		})
	}
}

func TestDecodeSession_LargeIntegers(t *testing.T) {
	session := txkit.Session{
		"nonce":      uint64(1<<60 + 1),
		"validUntil": map[string]any{"ts": int64(1<<62 + 3)},
	}

	text, err := EncodeSession(session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeSession(text)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if got["nonce"] != json.Number("1152921504606846977") {
		t.Errorf("nonce = %#v, want 1152921504606846977", got["nonce"])
	}
	nested, _ := got["validUntil"].(map[string]any)
	if nested["ts"] != json.Number("4611686018427387907") {
		t.Errorf("validUntil.ts = %#v, want 4611686018427387907", nested["ts"])
	}

	again, err := EncodeSession(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != text {
		t.Errorf("re-encoded text = %s, want %s", again, text)
	}
}

func TestDecodeSession_Null(t *testing.T) {
	got, err := DecodeSession("null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %v", got)
	}
}

func TestEncodeDecodeCollections(t *testing.T) {
	collections := []txkit.NFTCollection{
		{
			ContractName:    "Punks",
			ContractAddress: "0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB",
			ContractSymbol:  "PUNK",
			Items:           []txkit.NFT{{TokenID: "1", Name: "Punk #1", Amount: 1}},
		},
	}

	text, err := EncodeCollections(collections)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeCollections(text)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !reflect.DeepEqual(got, collections) {
		t.Errorf("collections mismatch: got %+v, want %+v", got, collections)
	}

	text, err = EncodeCollections(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "[]" {
		t.Errorf("expected [] for nil list, got %q", text)
	}

	if _, err := DecodeCollections("{"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
