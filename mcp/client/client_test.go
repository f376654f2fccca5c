package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/mcp"
	"github.com/etherspot/transaction-kit-go/mcp/server"
	"github.com/etherspot/transaction-kit-go/session"
)

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

type stubClient struct{}

func (stubClient) Account() txkit.Account {
	return txkit.Account{Address: testAddress, Type: txkit.AccountTypeContract}
}

func (stubClient) Connect(context.Context) (txkit.Account, error) {
	return stubClient{}.Account(), nil
}

func (stubClient) GetNFTList(context.Context, string) ([]txkit.NFTCollection, error) {
	return []txkit.NFTCollection{{
		ContractName:    "Punks",
		ContractAddress: "0xabc",
		Items:           []txkit.NFT{{TokenID: "42", Amount: 1}},
	}}, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	provider := txkit.ClientProviderFunc(func(chainID int64) (txkit.AccountClient, bool) {
		return stubClient{}, chainID == 137
	})
	srv := server.NewServer("txkit-test", "0.0.1", session.NewStore(session.NewMemoryStore()), provider)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := NewClient(context.Background(), ts.URL, WithClientInfo("txkit-client-test", "0.0.1"))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_GetNFTs(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	collections, err := c.GetNFTs(ctx, 137)
	if err != nil {
		t.Fatalf("GetNFTs error: %v", err)
	}
	if len(collections) != 1 || collections[0].Items[0].TokenID != "42" {
		t.Errorf("Unexpected collections %+v", collections)
	}

	_, err = c.GetNFTs(ctx, 1)
	if !mcp.IsToolError(err) {
		t.Errorf("Expected tool error for chain without client, got %v", err)
	}
}

func TestClient_SessionLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	got, err := c.GetSession(ctx, testAddress)
	if err != nil || got != nil {
		t.Fatalf("Expected nil session before set, got %v, %v", got, err)
	}

	if err := c.SetSession(ctx, testAddress, txkit.Session{"token": "abc"}); err != nil {
		t.Fatalf("SetSession error: %v", err)
	}

	got, err = c.GetSession(ctx, testAddress)
	if err != nil {
		t.Fatalf("GetSession error: %v", err)
	}
	if got["token"] != "abc" {
		t.Errorf("Expected token abc, got %v", got)
	}

	if err := c.ResetSession(ctx, testAddress); err != nil {
		t.Fatalf("ResetSession error: %v", err)
	}
	got, err = c.GetSession(ctx, testAddress)
	if err != nil || got != nil {
		t.Errorf("Expected nil session after reset, got %v, %v", got, err)
	}
}

func TestClient_InvalidAddress(t *testing.T) {
	c := newTestClient(t)

	err := c.ResetSession(context.Background(), "not-an-address")
	var toolErr *mcp.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Expected *mcp.ToolError, got %v", err)
	}
	if toolErr.Tool != mcp.ToolResetSession {
		t.Errorf("Expected tool %s, got %s", mcp.ToolResetSession, toolErr.Tool)
	}
}

func TestNewClient_AppliesOptionsOnce(t *testing.T) {
	provider := txkit.ClientProviderFunc(func(int64) (txkit.AccountClient, bool) { return nil, false })
	handler := server.NewServer("txkit-test", "0.0.1", session.NewStore(session.NewMemoryStore()), provider).Handler()

	var mu sync.Mutex
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("X-Api-Key"))
		mu.Unlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	applied := 0
	counting := func(*Config) { applied++ }

	c, err := NewClient(context.Background(), ts.URL, WithHeader("X-Api-Key", "secret"), counting)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if applied != 1 {
		t.Errorf("Expected options applied once, got %d", applied)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("Expected the server to receive requests")
	}
	for i, v := range seen {
		if v != "secret" {
			t.Errorf("request %d: Expected X-Api-Key header secret, got %q", i, v)
		}
	}
}
