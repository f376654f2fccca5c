// Package client calls the session and NFT tools of an MCP server with
// typed arguments and results.
package client

import (
	"context"
	"errors"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpproto "github.com/mark3labs/mcp-go/mcp"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/encoding"
	"github.com/etherspot/transaction-kit-go/mcp"
)

// Client is a typed MCP client for the session and NFT tools.
type Client struct {
	mcpClient *mcpclient.Client
}

// NewClient connects to the MCP server at serverURL over streamable HTTP
// and initializes a session.
func NewClient(ctx context.Context, serverURL string, opts ...Option) (*Client, error) {
	config := newConfig(serverURL, opts)

	var transportOpts []transport.StreamableHTTPCOption
	if len(config.Headers) > 0 {
		transportOpts = append(transportOpts, transport.WithHTTPHeaders(config.Headers))
	}
	tr, err := transport.NewStreamableHTTP(config.ServerURL, transportOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	return start(ctx, tr, config)
}

// NewClientWithTransport initializes a session over an existing transport.
// Headers are ignored; configure them on the transport.
func NewClientWithTransport(ctx context.Context, tr transport.Interface, opts ...Option) (*Client, error) {
	return start(ctx, tr, newConfig("", opts))
}

func newConfig(serverURL string, opts []Option) *Config {
	config := DefaultConfig(serverURL)
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func start(ctx context.Context, tr transport.Interface, config *Config) (*Client, error) {
	c := mcpclient.NewClient(tr)
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start client: %w", err)
	}

	_, err := c.Initialize(ctx, mcpproto.InitializeRequest{
		Params: mcpproto.InitializeParams{
			ProtocolVersion: mcp.ProtocolVersion,
			ClientInfo: mcpproto.Implementation{
				Name:    config.Name,
				Version: config.Version,
			},
			Capabilities: mcpproto.ClientCapabilities{},
		},
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	return &Client{mcpClient: c}, nil
}

// Close ends the MCP session.
func (c *Client) Close() error {
	return c.mcpClient.Close()
}

// GetNFTs calls get_nfts for chainID.
func (c *Client) GetNFTs(ctx context.Context, chainID int64) ([]txkit.NFTCollection, error) {
	text, err := c.call(ctx, mcp.ToolGetNFTs, map[string]any{mcp.ArgChainID: chainID})
	if err != nil {
		return nil, err
	}
	return encoding.DecodeCollections(text)
}

// GetSession calls get_session for address. It returns nil without error
// when no session is stored.
func (c *Client) GetSession(ctx context.Context, address string) (txkit.Session, error) {
	text, err := c.call(ctx, mcp.ToolGetSession, map[string]any{mcp.ArgAddress: address})
	if errors.Is(err, mcp.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return encoding.DecodeSession(text)
}

// SetSession calls set_session for address.
func (c *Client) SetSession(ctx context.Context, address string, session txkit.Session) error {
	_, err := c.call(ctx, mcp.ToolSetSession, map[string]any{
		mcp.ArgAddress: address,
		mcp.ArgSession: map[string]any(session),
	})
	return err
}

// ResetSession calls reset_session for address.
func (c *Client) ResetSession(ctx context.Context, address string) error {
	_, err := c.call(ctx, mcp.ToolResetSession, map[string]any{mcp.ArgAddress: address})
	return err
}

// call invokes a tool and returns its first text content. Error results
// are returned as *mcp.ToolError.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) (string, error) {
	result, err := c.mcpClient.CallTool(ctx, mcpproto.CallToolRequest{
		Params: mcpproto.CallToolParams{
			Name:      tool,
			Arguments: args,
		},
	})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", tool, err)
	}

	text, ok := firstText(result.Content)
	if result.IsError {
		toolErr := &mcp.ToolError{Tool: tool, Message: text}
		if text == mcp.NotFoundMessage {
			toolErr.Err = mcp.ErrNotFound
		}
		return "", toolErr
	}
	if !ok {
		return "", fmt.Errorf("call %s: %w", tool, mcp.ErrEmptyResult)
	}
	return text, nil
}

func firstText(contents []mcpproto.Content) (string, bool) {
	for _, content := range contents {
		switch tc := content.(type) {
		case mcpproto.TextContent:
			return tc.Text, true
		case *mcpproto.TextContent:
			return tc.Text, true
		}
	}
	return "", false
}
