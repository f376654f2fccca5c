package client

// Config holds configuration for the MCP client
type Config struct {
	// ServerURL is the MCP server endpoint
	ServerURL string

	// Headers are added to every HTTP request (optional)
	Headers map[string]string

	// Name is the client name sent during initialization
	Name string

	// Version is the client version sent during initialization
	Version string
}

// DefaultConfig returns a default client configuration
func DefaultConfig(serverURL string) *Config {
	return &Config{
		ServerURL: serverURL,
		Name:      "txkit-mcp-client",
		Version:   "1.0.0",
	}
}

// Option configures the client
type Option func(*Config)

// WithHeader adds an HTTP header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// WithClientInfo sets the name and version sent during initialization
func WithClientInfo(name, version string) Option {
	return func(c *Config) {
		c.Name = name
		c.Version = version
	}
}
