package server

import (
	"context"
	"errors"
	"fmt"
	"math"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/encoding"
	"github.com/etherspot/transaction-kit-go/mcp"
	"github.com/etherspot/transaction-kit-go/nft"
	"github.com/etherspot/transaction-kit-go/validation"
)

func (s *Server) handleGetNFTs(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	chainID, err := chainIDArg(req.GetArguments())
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	collections, err := nft.Fetch(ctx, s.provider, chainID)
	if errors.Is(err, txkit.ErrNoClient) {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		s.logger.Warn("failed to fetch nfts", "chainId", chainID, "error", err)
		return mcpproto.NewToolResultError(txkit.ParseErrorMessage(err, "failed to fetch nfts")), nil
	}

	text, err := encoding.EncodeCollections(collections)
	if err != nil {
		return nil, fmt.Errorf("encode collections: %w", err)
	}
	s.debugger.Log("nfts listed", map[string]any{"chainId": chainID, "collections": len(collections)}, s.debug)
	return textResult(text), nil
}

func (s *Server) handleGetSession(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	address, err := addressArg(req.GetArguments())
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	session, err := s.store.GetSession(ctx, address)
	if err != nil {
		return mcpproto.NewToolResultError(txkit.ParseErrorMessage(err, "failed to read session")), nil
	}
	if session == nil {
		return mcpproto.NewToolResultError(mcp.NotFoundMessage), nil
	}

	text, err := encoding.EncodeSession(session)
	if err != nil {
		return mcpproto.NewToolResultError(txkit.ParseErrorMessage(err, "failed to encode session")), nil
	}
	s.debugger.Log("session read", map[string]any{"address": address}, s.debug)
	return textResult(text), nil
}

func (s *Server) handleSetSession(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	args := req.GetArguments()
	address, err := addressArg(args)
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	session, err := sessionArg(args)
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	if err := s.store.SetSession(ctx, address, session); err != nil {
		s.logger.Error("failed to store session", "address", address, "error", err)
		return mcpproto.NewToolResultError(txkit.ParseErrorMessage(err, "failed to store session")), nil
	}
	s.debugger.Log("session stored", map[string]any{"address": address}, s.debug)
	return textResult("ok"), nil
}

func (s *Server) handleResetSession(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	address, err := addressArg(req.GetArguments())
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	if err := s.store.ResetSession(ctx, address); err != nil {
		s.logger.Error("failed to reset session", "address", address, "error", err)
		return mcpproto.NewToolResultError(txkit.ParseErrorMessage(err, "failed to reset session")), nil
	}
	s.debugger.Log("session reset", map[string]any{"address": address}, s.debug)
	return textResult("ok"), nil
}

func textResult(text string) *mcpproto.CallToolResult {
	return &mcpproto.CallToolResult{
		Content: []mcpproto.Content{
			mcpproto.NewTextContent(text),
		},
	}
}

func addressArg(args map[string]any) (string, error) {
	address, _ := args[mcp.ArgAddress].(string)
	if err := validation.ValidateAddress(address); err != nil {
		return "", fmt.Errorf("%w: %v", mcp.ErrInvalidArguments, err)
	}
	return address, nil
}

// chainIDArg accepts a chain id as a JSON number. A string holding an id or
// a chain name is accepted too, for callers that do not check the schema.
func chainIDArg(args map[string]any) (int64, error) {
	switch v := args[mcp.ArgChainID].(type) {
	case nil:
		return txkit.DefaultChainID, nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit in an int64.
		if v <= 0 || v != math.Trunc(v) || v >= float64(math.MaxInt64) {
			return 0, fmt.Errorf("%w: chainId %v", mcp.ErrInvalidArguments, v)
		}
		return int64(v), nil
	case string:
		id, err := txkit.ParseChainID(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", mcp.ErrInvalidArguments, err)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: chainId must be a number or string", mcp.ErrInvalidArguments)
	}
}

// sessionArg accepts a session as a JSON object or as a string holding one.
func sessionArg(args map[string]any) (txkit.Session, error) {
	switch v := args[mcp.ArgSession].(type) {
	case map[string]any:
		return txkit.Session(v), nil
	case string:
		session, err := encoding.DecodeSession(v)
		if err != nil || session == nil {
			return nil, fmt.Errorf("%w: session must be a JSON object", mcp.ErrInvalidArguments)
		}
		return session, nil
	default:
		return nil, fmt.Errorf("%w: session must be a JSON object", mcp.ErrInvalidArguments)
	}
}
