package nai

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/hansajasandeepabadalge/naiterm/internal/token"
	"github.com/hansajasandeepabadalge/naiterm/internal/xhttp"
	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
)

const HeaderSessionID = "X-Naiterm-Session-ID"

// Client is the single chokepoint for all backend calls. It owns the
// authenticated-request protocol: bearer attachment, the one-shot
// refresh-and-retry on 401, and error normalization.
type Client struct {
	Auth       AuthService
	Dashboard  DashboardService
	Indicators IndicatorService
	Insights   InsightService
	Operations OperationsService

	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	logger     *slog.Logger
	sessionID  string
	schemas    *schemaSet

	refreshGroup singleflight.Group
}

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	sessionID  string
	timeout    time.Duration
}

type Option func(*clientConfig)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = httpClient }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithSessionID(sessionID string) Option {
	return func(cfg *clientConfig) { cfg.sessionID = sessionID }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func New(baseURL string, tokens token.Store, opts ...Option) *Client {
	cfg := &clientConfig{
		logger:  slog.Default(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.timeout))
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: cfg.httpClient,
		tokens:     tokens,
		logger:     cfg.logger,
		sessionID:  cfg.sessionID,
		schemas:    newSchemaSet(),
	}

	c.Auth = &authService{client: c}
	c.Dashboard = &dashboardService{client: c}
	c.Indicators = &indicatorService{client: c}
	c.Insights = &insightService{client: c}
	c.Operations = &operationsService{client: c}

	return c
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	result any

	// public calls skip the bearer token and the 401 refresh path
	public bool

	// resource names the schema the response is validated against;
	// empty skips validation
	resource string
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body []byte
	if cl.body != nil {
		b, err := go_json.Marshal(cl.body)
		if err != nil {
			return &DecodeError{Resource: cl.path, Err: err}
		}
		body = b
	}

	resp, err := c.send(ctx, cl, body)
	if err != nil {
		return connectivityError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !cl.public {
		_ = resp.Body.Close()

		if err := c.refreshToken(ctx); err != nil {
			c.logger.WarnContext(ctx, "token refresh failed",
				xslog.Method(cl.method),
				xslog.Endpoint(cl.path),
				xslog.Error(err))
			if clearErr := c.tokens.Clear(ctx); clearErr != nil {
				c.logger.WarnContext(ctx, "failed to clear tokens", xslog.Error(clearErr))
			}
			return ErrSessionExpired
		}

		// headers are rebuilt with the refreshed token; a failure here
		// propagates as-is, there is no second refresh
		resp, err = c.send(ctx, cl, body)
		if err != nil {
			return connectivityError(err)
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode >= 300 {
		c.logger.DebugContext(ctx, "backend returned error status",
			xslog.Method(cl.method),
			xslog.Endpoint(cl.path),
			xslog.HTTPStatus(resp.StatusCode))
		return parseAPIError(resp)
	}

	if cl.result == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectivityError(err)
	}

	if cl.resource != "" {
		if err := c.schemas.validate(cl.resource, raw); err != nil {
			return &DecodeError{Resource: cl.resource, Err: err}
		}
	}

	if err := go_json.Unmarshal(raw, cl.result); err != nil {
		return &DecodeError{Resource: cl.path, Err: err}
	}

	return nil
}

func (c *Client) send(ctx context.Context, cl call, body []byte) (*http.Response, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.sessionID != "" {
		req.Header.Set(HeaderSessionID, c.sessionID)
	}

	if !cl.public {
		accessToken, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		if accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	return c.httpClient.Do(req)
}

// Get issues an authenticated GET and decodes the JSON response into
// result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query, result: result})
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, call{method: http.MethodPost, path: path, body: body, result: result})
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, call{method: http.MethodPut, path: path, body: body, result: result})
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path})
}
