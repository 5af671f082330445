package rvk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fachref/rvkc/core"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the JSON rendition of the Regensburg lookup API.
	DefaultBaseURL = "https://rvk.uni-regensburg.de/api/json"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the default request rate against the public API.
	DefaultRateLimit = 4.0

	// DefaultMaxAttempts is the default number of attempts per call.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the base delay for the retry backoff.
	DefaultRetryDelay = 500 * time.Millisecond

	defaultUserAgent = "rvkc"
)

// Node is the wire-level view of one hierarchy node as the API returns it.
// It carries no parent or depth information; the Accessor derives those
// from the traversal context.
type Node struct {
	Notation    string
	Label       string
	HasChildren bool
}

// Client is a rate-limited HTTP client for the RVK lookup API.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	baseURL     string
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestsPerSecond sets the rate limit for outgoing requests.
func WithRequestsPerSecond(n float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(n), 2)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRetry configures the retry policy for transient upstream failures.
func WithRetry(maxAttempts int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.retryDelay = baseDelay
	}
}

// WithClientLogger sets a custom logger.
// Default is slog.Default().
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a new RVK API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), 2),
		baseURL:     DefaultBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// wireNode mirrors the API's node element.
type wireNode struct {
	Notation    string `json:"notation"`
	Benennung   string `json:"benennung"`
	HasChildren string `json:"has_children"`
}

func (w wireNode) toNode() Node {
	return Node{
		Notation:    w.Notation,
		Label:       w.Benennung,
		HasChildren: w.HasChildren == "yes",
	}
}

type nodeListResponse struct {
	Node []wireNode `json:"node"`
}

type nodeResponse struct {
	Node wireNode `json:"node"`
}

type ancestorsResponse struct {
	Ancestor []wireNode `json:"ancestor"`
}

// Top returns the top-level groups (Hauptgruppen) in their upstream order.
func (c *Client) Top(ctx context.Context) ([]Node, error) {
	var resp nodeListResponse
	if err := c.get(ctx, "/top", &resp); err != nil {
		return nil, err
	}
	return toNodes(resp.Node), nil
}

// Node returns a single node by notation.
func (c *Client) Node(ctx context.Context, notation string) (Node, error) {
	var resp nodeResponse
	if err := c.get(ctx, "/node/"+url.PathEscape(notation), &resp); err != nil {
		return Node{}, err
	}
	return resp.Node.toNode(), nil
}

// Children returns the ordered children of a node. An empty slice means
// the node is a leaf.
func (c *Client) Children(ctx context.Context, notation string) ([]Node, error) {
	var resp nodeListResponse
	if err := c.get(ctx, "/children/"+url.PathEscape(notation), &resp); err != nil {
		return nil, err
	}
	return toNodes(resp.Node), nil
}

// Ancestors returns the chain from the outermost group down to the queried
// node itself, root first.
func (c *Client) Ancestors(ctx context.Context, notation string) ([]Node, error) {
	var resp ancestorsResponse
	if err := c.get(ctx, "/ancestors/"+url.PathEscape(notation), &resp); err != nil {
		return nil, err
	}
	return toNodes(resp.Ancestor), nil
}

func toNodes(wire []wireNode) []Node {
	nodes := make([]Node, 0, len(wire))
	for _, w := range wire {
		nodes = append(nodes, w.toNode())
	}
	return nodes
}

// get performs a rate-limited GET against the API and decodes the JSON
// response into out. Transient failures are retried with backoff.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return RetryWithBackoff(ctx, func() error {
		return c.getOnce(ctx, path, out)
	}, c.maxAttempts, c.retryDelay)
}

func (c *Client) getOnce(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors maps an HTTP status to the error taxonomy.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", core.ErrNotFound, resp.Request.URL.Path)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}
	return nil
}
