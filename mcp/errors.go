// Package mcp exposes session storage and NFT listing as MCP (Model Context
// Protocol) tools. The server subpackage registers the tools on an mcp-go
// server; the client subpackage calls them with typed arguments and results.
package mcp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArguments indicates that a tool was called with missing or malformed arguments
	ErrInvalidArguments = errors.New("invalid tool arguments")

	// ErrNotFound indicates that the requested resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrEmptyResult indicates that a tool result carried no text content
	ErrEmptyResult = errors.New("tool result has no text content")
)

// ToolError reports a tool call that returned an error result.
type ToolError struct {
	Tool    string
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %s", e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// IsToolError checks if an error came from a tool error result.
func IsToolError(err error) bool {
	var toolErr *ToolError
	return errors.As(err, &toolErr)
}
