package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public TikHub API host.
	DefaultBaseURL = "https://api.tikhub.io"
	// DefaultTimeout applies when no timeout option is given.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "tikhub-go"
)

// Client holds the connection settings shared by every endpoint call. It is
// safe for concurrent use; the With* methods return modified copies.
type Client struct {
	baseURL    string
	token      string
	authHeader string
	authPrefix string
	headers    http.Header
	cookies    []*http.Cookie
	httpClient *http.Client
	limiter    *rate.Limiter
	raise      bool
	logger     zerolog.Logger
}

// NewClient creates a client that sends no credentials.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	return newClient(baseURL, "", logger, opts)
}

// NewAuthenticatedClient creates a client that sends token on every request.
func NewAuthenticatedClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return newClient(baseURL, token, logger, opts)
}

func newClient(baseURL, token string, logger zerolog.Logger, opts []Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.userAgent != "" {
		o.headers.Set("User-Agent", o.userAgent)
	}

	c := &Client{
		baseURL:    baseURL,
		token:      token,
		authHeader: o.authHeaderName,
		authPrefix: o.authPrefix,
		headers:    o.headers,
		cookies:    o.cookies,
		httpClient: buildHTTPClient(o),
		raise:      o.raiseOnUnexpectedStatus,
		logger:     logger,
	}
	if o.rateLimit > 0 {
		burst := o.rateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(o.rateLimit), burst)
	}

	return c, nil
}

func buildHTTPClient(o clientOptions) *http.Client {
	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	if !o.followRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	if o.insecureSkipVerify {
		base, ok := hc.Transport.(*http.Transport)
		if !ok || base == nil {
			base = http.DefaultTransport.(*http.Transport)
		}
		tr := base.Clone()
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{}
		}
		tr.TLSClientConfig.InsecureSkipVerify = true
		hc.Transport = tr
	}
	return hc
}

// BaseURL returns the host every endpoint path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Authenticated reports whether the client sends a token.
func (c *Client) Authenticated() bool { return c.token != "" }

// RaiseOnUnexpectedStatus reports whether unexpected statuses become errors.
func (c *Client) RaiseOnUnexpectedStatus() bool { return c.raise }

// HTTPClient returns the underlying transport client.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

func (c *Client) clone() *Client {
	cp := *c
	cp.headers = c.headers.Clone()
	cp.cookies = append([]*http.Cookie(nil), c.cookies...)
	return &cp
}

// WithHeaders returns a copy of the client that also sends headers.
func (c *Client) WithHeaders(headers map[string]string) *Client {
	cp := c.clone()
	for k, v := range headers {
		cp.headers.Set(k, v)
	}
	return cp
}

// WithCookies returns a copy of the client that also sends cookies.
func (c *Client) WithCookies(cookies map[string]string) *Client {
	cp := c.clone()
	for _, name := range slices.Sorted(maps.Keys(cookies)) {
		cp.cookies = append(cp.cookies, &http.Cookie{Name: name, Value: cookies[name]})
	}
	return cp
}

// WithTimeout returns a copy of the client with a different timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	cp := c.clone()
	hc := *c.httpClient
	hc.Timeout = timeout
	cp.httpClient = &hc
	return cp
}

// WithLogger returns a copy of the client that logs to logger.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	cp := c.clone()
	cp.logger = logger
	return cp
}

// prepare applies the client's headers, cookies and credentials to req.
func (c *Client) prepare(req *http.Request) {
	c.applyHeaders(req)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if c.token != "" {
		value := c.token
		if c.authPrefix != "" {
			value = c.authPrefix + " " + c.token
		}
		req.Header.Set(c.authHeader, value)
	}
}

func (c *Client) applyHeaders(req *http.Request) {
	maps.Copy(req.Header, c.headers.Clone())
	req.Header.Set("Accept", "application/json")
}

// rawResponse is what comes back from the wire before any decoding.
type rawResponse struct {
	statusCode int
	content    []byte
	headers    http.Header
}

// send performs req and reads the whole body.
func (c *Client) send(req *http.Request) (*rawResponse, error) {
	ctx := req.Context()
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("TikHub API request")

	return &rawResponse{
		statusCode: resp.StatusCode,
		content:    body,
		headers:    resp.Header,
	}, nil
}

// Ping checks that the base URL answers at all and returns the status it
// answered with. Any HTTP response counts; no token or cookies are sent.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyHeaders(req)

	raw, err := c.send(req)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to TikHub: %w", err)
	}
	return raw.statusCode, nil
}
