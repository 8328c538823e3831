package client

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout                 time.Duration
	httpClient              *http.Client
	headers                 http.Header
	cookies                 []*http.Cookie
	userAgent               string
	raiseOnUnexpectedStatus bool
	followRedirects         bool
	insecureSkipVerify      bool
	authHeaderName          string
	authPrefix              string
	rateLimit               float64
	rateBurst               int
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:        DefaultTimeout,
		headers:        http.Header{},
		userAgent:      DefaultUserAgent,
		authHeaderName: "Authorization",
		authPrefix:     "Bearer",
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sends requests through hc. Timeout and redirect options are
// applied to a copy; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(o *clientOptions) {
		o.headers.Add(key, value)
	}
}

// WithCookie adds a cookie to every request.
func WithCookie(name, value string) Option {
	return func(o *clientOptions) {
		o.cookies = append(o.cookies, &http.Cookie{Name: name, Value: value})
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRaiseOnUnexpectedStatus makes calls fail with *UnexpectedStatusError
// when the server answers anything but 200 or 422. Without it such responses
// yield a nil result and no error.
func WithRaiseOnUnexpectedStatus(raise bool) Option {
	return func(o *clientOptions) {
		o.raiseOnUnexpectedStatus = raise
	}
}

// WithFollowRedirects controls whether 3xx responses are followed. They are
// not by default, so a redirect surfaces as an unexpected status.
func WithFollowRedirects(follow bool) Option {
	return func(o *clientOptions) {
		o.followRedirects = follow
	}
}

// WithInsecureSkipVerify disables certificate verification.
// Use with caution and only for development/testing.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.insecureSkipVerify = true
	}
}

// WithAuthHeaderName changes the header carrying the token.
func WithAuthHeaderName(name string) Option {
	return func(o *clientOptions) {
		if name != "" {
			o.authHeaderName = name
		}
	}
}

// WithAuthPrefix changes the scheme written before the token. An empty prefix
// sends the bare token.
func WithAuthPrefix(prefix string) Option {
	return func(o *clientOptions) {
		o.authPrefix = prefix
	}
}

// WithRateLimit throttles the client to rps requests per second with the
// given burst. A non-positive rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) {
		o.rateLimit = rps
		o.rateBurst = burst
	}
}
