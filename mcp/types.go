package mcp

// Tool names
const (
	ToolGetNFTs      = "get_nfts"
	ToolGetSession   = "get_session"
	ToolSetSession   = "set_session"
	ToolResetSession = "reset_session"
)

// Tool argument keys
const (
	ArgChainID = "chainId"
	ArgAddress = "address"
	ArgSession = "session"
)

// ProtocolVersion is the MCP protocol version the client negotiates.
const ProtocolVersion = "2024-11-05"

// NotFoundMessage is the error text of a tool result for a missing resource.
const NotFoundMessage = "not found"
