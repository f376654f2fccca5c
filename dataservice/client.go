// Package dataservice is a client for the NFT data API used to list the
// collections held by an account. Requests carry an API key and a request id;
// transient failures are retried with exponential backoff.
package dataservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	txkit "github.com/etherspot/transaction-kit-go"
	"github.com/etherspot/transaction-kit-go/retry"
	"github.com/etherspot/transaction-kit-go/validation"
)

// DefaultBaseURL is the production data API endpoint.
const DefaultBaseURL = "https://data-api.etherspot.io"

const nftListPath = "/v1/nfts"

// ErrMalformedResponse indicates a 2xx response whose body could not be decoded.
var ErrMalformedResponse = errors.New("dataservice: malformed response")

// Client lists NFTs through the data API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      retry.Config
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// NewClient creates a data API client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: txkit.DefaultTimeouts.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: retry.DefaultConfig,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		if err := validation.ValidateBaseURL(baseURL); err != nil {
			return fmt.Errorf("base url: %w", err)
		}
		c.baseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithAPIKey sets the key sent in the X-API-Key header.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) error {
		c.apiKey = apiKey
		return nil
	}
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithRequestTimeout bounds each HTTP request made by the client. The
// timeout is set on a copy, so an HTTP client passed to WithHTTPClient is
// left untouched.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
		return nil
	}
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(c *Client) error {
		c.retry = cfg
		return nil
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

type nftListResponse struct {
	Items []txkit.NFTCollection `json:"items"`
}

// GetNFTList returns the NFT collections held by account on chainID.
func (c *Client) GetNFTList(ctx context.Context, chainID int64, account string) ([]txkit.NFTCollection, error) {
	if account == "" {
		return nil, txkit.ErrInvalidAddress
	}
	if chainID <= 0 {
		return nil, fmt.Errorf("%w: %d", txkit.ErrInvalidChainID, chainID)
	}

	query := url.Values{}
	query.Set("chainId", strconv.FormatInt(chainID, 10))
	query.Set("account", account)

	var resp nftListResponse
	attempt := 0
	_, err := retry.WithRetry(ctx, c.retry, isRetryable, func(ctx context.Context) (struct{}, error) {
		if attempt > 0 {
			c.logger.Debug("retrying nft list request", "attempt", attempt+1, "chainId", chainID, "account", account)
		}
		attempt++
		return struct{}{}, c.doRequest(ctx, http.MethodGet, nftListPath, query, &resp)
	})
	if err != nil {
		return nil, err
	}

	if resp.Items == nil {
		return []txkit.NFTCollection{}, nil
	}
	return resp.Items, nil
}

// doRequest executes a single GET against the API and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, result any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyError(resp, method, path, requestID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// classifyError builds an APIError from a non-2xx response.
//
//   - 429: rate_limit (retryable, honours Retry-After)
//   - 5xx: server_error (retryable)
//   - 401/403: auth_error
//   - other 4xx: client_error
func classifyError(resp *http.Response, method, path, requestID string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
		Method:     method,
		Path:       path,
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
	} else if len(body) > 0 {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.ErrorType = ErrorTypeRateLimit
		apiErr.Retryable = true
		apiErr.RetryAfter = parseRetryAfter(resp)
		if apiErr.Message == "" {
			apiErr.Message = "rate limit exceeded"
		}
	case resp.StatusCode >= 500:
		apiErr.ErrorType = ErrorTypeServerError
		apiErr.Retryable = true
		if apiErr.Message == "" {
			apiErr.Message = "data service unavailable"
		}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		apiErr.ErrorType = ErrorTypeAuthError
		if apiErr.Message == "" {
			apiErr.Message = "invalid or missing API key"
		}
	default:
		apiErr.ErrorType = ErrorTypeClientError
		if apiErr.Message == "" {
			apiErr.Message = "invalid request"
		}
	}

	return apiErr
}

// parseRetryAfter reads Retry-After as seconds or an HTTP date. Zero if absent or invalid.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	if errors.Is(err, ErrMalformedResponse) {
		return false
	}
	// Transport failures are transient; cancellations are not.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
