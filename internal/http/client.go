// Package http implements the request dispatcher: it builds the final HTTP
// request for a routed URL, executes it with a fixed timeout, and classifies
// transport failures into the typed errors of pkg/pinmeto.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pinmeto-community/pinmeto-client/internal/constants"
	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// TokenProvider supplies the bearer token attached to authenticated
// requests.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// BasicAuth carries credentials for requests authenticated with HTTP Basic
// instead of a bearer token (the token exchange itself).
type BasicAuth struct {
	Username string
	Password string
}

// Request describes one fully routed API request.
type Request struct {
	// Method is GET, POST, or PUT.
	Method string

	// URL is the absolute request URL produced by the router.
	URL string

	// Query is appended as the encoded query string. Used with GET.
	Query url.Values

	// Body is JSON-encoded into the request body. Used with POST/PUT.
	Body interface{}

	// FormBody is form-encoded into the request body and switches the
	// Content-Type to application/x-www-form-urlencoded.
	FormBody url.Values

	// BasicAuth, when set, replaces the bearer token with HTTP Basic
	// credentials. The token provider is not consulted.
	BasicAuth *BasicAuth

	// Headers are additional headers, applied last.
	Headers map[string]string
}

// Response is the raw result of a dispatched request. StatusCode is
// reported for observability only: the dispatcher never converts a non-2xx
// status into an error, and Body is returned unmodified either way.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Option configures the dispatcher.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger pinmeto.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries for transient transport failures. Without
// this option every request is attempted exactly once.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// Client executes routed requests. Safe for concurrent use.
type Client struct {
	httpClient   *nethttp.Client
	tokens       TokenProvider
	logger       pinmeto.Logger
	debug        bool
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewClient creates a dispatcher. tokens may be nil for unauthenticated use
// (tests); requests carrying BasicAuth never consult it.
func NewClient(tokens TokenProvider, opts ...Option) *Client {
	client := &Client{
		tokens:       tokens,
		userAgent:    constants.DefaultUserAgent,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.RequestTimeout

	// Retry transport failures only. A response is always final, whatever
	// its status: remote error payloads must reach the caller unmodified.
	retryClient.CheckRetry = func(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}

		return false, nil
	}

	client.httpClient = retryClient.StandardClient()

	return client
}

// Do executes the request and returns the raw response. Transport failures
// come back as *pinmeto.TransportError; remote-API error payloads do not —
// they are successful responses to the dispatcher.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ClassifyError(httpReq.URL.String(), err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, ClassifyError(httpReq.URL.String(), err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// Get issues a GET with an optional query string.
func (c *Client) Get(ctx context.Context, targetURL string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodGet,
		URL:    targetURL,
		Query:  query,
	})
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, targetURL string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodPost,
		URL:    targetURL,
		Body:   body,
	})
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, targetURL string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: nethttp.MethodPut,
		URL:    targetURL,
		Body:   body,
	})
}

// PostForm issues a POST with a form-encoded body and HTTP Basic auth. This
// is the shape of the token exchange.
func (c *Client) PostForm(ctx context.Context, targetURL string, form url.Values, auth *BasicAuth) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:    nethttp.MethodPost,
		URL:       targetURL,
		FormBody:  form,
		BasicAuth: auth,
	})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	targetURL := req.URL
	if len(req.Query) > 0 {
		targetURL = targetURL + "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	contentType := ""

	switch {
	case req.FormBody != nil:
		bodyReader = strings.NewReader(req.FormBody.Encode())
		contentType = constants.ContentTypeForm
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = strings.NewReader(string(data))
		contentType = constants.ContentTypeJSON
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, targetURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	} else if c.tokens != nil {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	return httpReq, nil
}
