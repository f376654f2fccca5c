// Package server registers the session and NFT tools on an mcp-go server.
package server

import (
	"log/slog"
	"net/http"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/mcp"
)

// Server wraps an MCP server exposing the session store and the NFT
// fetch cycle as tools.
type Server struct {
	mcpServer *mcpserver.MCPServer
	store     txkit.SessionStorage
	provider  txkit.ClientProvider
	logger    *slog.Logger
	debugger  *txkit.Debugger
	debug     bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool failures and debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDebug enables per-call debug records.
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}

// NewServer creates an MCP server with the get_nfts, get_session,
// set_session and reset_session tools registered.
func NewServer(name, version string, store txkit.SessionStorage, provider txkit.ClientProvider, opts ...Option) *Server {
	s := &Server{
		mcpServer: mcpserver.NewMCPServer(name, version, mcpserver.WithToolCapabilities(false)),
		store:     store,
		provider:  provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.debugger = txkit.NewDebugger(s.logger)

	for _, tool := range s.tools() {
		s.mcpServer.AddTool(tool.Tool, tool.Handler)
	}
	return s
}

func (s *Server) tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		{
			Tool: mcpproto.NewTool(
				mcp.ToolGetNFTs,
				mcpproto.WithDescription("List the NFT collections held by the connected account on a chain"),
				mcpproto.WithNumber(mcp.ArgChainID, mcpproto.Description("Chain id (defaults to Ethereum mainnet)")),
			),
			Handler: s.handleGetNFTs,
		},
		{
			Tool: mcpproto.NewTool(
				mcp.ToolGetSession,
				mcpproto.WithDescription("Read the wallet session stored for an account"),
				mcpproto.WithString(mcp.ArgAddress, mcpproto.Required(), mcpproto.Description("Account address")),
			),
			Handler: s.handleGetSession,
		},
		{
			Tool: mcpproto.NewTool(
				mcp.ToolSetSession,
				mcpproto.WithDescription("Store the wallet session for an account"),
				mcpproto.WithString(mcp.ArgAddress, mcpproto.Required(), mcpproto.Description("Account address")),
				mcpproto.WithObject(mcp.ArgSession, mcpproto.Required(), mcpproto.Description("Session object")),
			),
			Handler: s.handleSetSession,
		},
		{
			Tool: mcpproto.NewTool(
				mcp.ToolResetSession,
				mcpproto.WithDescription("Clear the wallet session stored for an account"),
				mcpproto.WithString(mcp.ArgAddress, mcpproto.Required(), mcpproto.Description("Account address")),
			),
			Handler: s.handleResetSession,
		},
	}
}

// Handler returns the streamable HTTP handler of the MCP server.
func (s *Server) Handler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(s.mcpServer)
}

// Start serves the MCP server over HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting mcp server", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ServeStdio serves the MCP server over stdin and stdout.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}

// GetMCPServer returns the underlying MCP server (for advanced usage)
func (s *Server) GetMCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}
