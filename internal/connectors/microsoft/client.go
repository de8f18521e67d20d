package microsoft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/hagraph/hagraph/internal/logger"
)

// DefaultBaseURL is the Microsoft Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client binds an HTTP session and an AuthManager to the Graph provider namespaces.
// Constructing it performs no network calls.
type Client struct {
	auth       *AuthManager
	httpClient *http.Client
	baseURL    string
	limiters   map[ServiceType]*RateLimiter

	presence *PresenceProvider
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the session used for Graph calls. The session is
// expected to attach the bearer token itself.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the Graph endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimiter replaces the limiter used for a service.
func WithRateLimiter(service ServiceType, rl *RateLimiter) ClientOption {
	return func(cl *Client) {
		cl.limiters[service] = rl
	}
}

// NewClient creates a Graph client. Unless WithHTTPClient is given, the session
// is an oauth2 client whose transport refreshes and attaches the manager's token.
func NewClient(ctx context.Context, auth *AuthManager, opts ...ClientOption) *Client {
	c := &Client{
		auth:    auth,
		baseURL: DefaultBaseURL,
		limiters: map[ServiceType]*RateLimiter{
			ServicePresence: NewRateLimiter(ServicePresence),
			ServiceProfile:  NewRateLimiter(ServiceProfile),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = oauth2.NewClient(ctx, auth.TokenSource(ctx))
	}
	c.presence = &PresenceProvider{client: c}
	return c
}

// Auth returns the authentication manager the client was built with.
func (c *Client) Auth() *AuthManager {
	return c.auth
}

// Presence returns the presence provider bound to this client's session.
func (c *Client) Presence() *PresenceProvider {
	return c.presence
}

// do sends a single request and returns the buffered body.
// Non-2xx responses are returned as *HTTPError together with the response.
func (c *Client) do(ctx context.Context, service ServiceType, method, path string, body any) (*http.Response, []byte, error) {
	if rl := c.limiters[service]; rl != nil {
		if err := rl.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("microsoft: %s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := newHTTPError(resp.StatusCode, resp.Header, data)
		if IsRateLimited(resp.StatusCode) {
			if rl := c.limiters[service]; rl != nil {
				rl.RecordRateLimitError(httpErr.RetryAfter)
			}
			logger.Warn("microsoft: %s throttled, retry after %s", service, httpErr.RetryAfter)
		}
		return resp, data, httpErr
	}

	return resp, data, nil
}

// decode unmarshals a response body, reporting schema mismatches as *ParseError.
func decode(data []byte, target string, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Target: target, Err: err}
	}
	return nil
}
