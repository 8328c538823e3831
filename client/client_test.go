package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchParams struct {
	Keyword string                 `url:"keyword"`
	Cursor  optional.Value[int]    `url:"cursor"`
	Region  optional.Value[string] `url:"region"`
}

var (
	searchEndpoint = Get[searchParams, models.ResponseModel]("/api/v1/test/search")
	batchEndpoint  = Post[models.TikTokVideoBatchRequest, models.ResponseModel]("/api/v1/test/batch")
)

const okBody = `{"code":200,"router":"/api/v1/test/search","data":{"items":[1,2]}}`

// capturedRequest is what the test server saw.
type capturedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) handler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		r.mu.Lock()
		r.requests = append(r.requests, capturedRequest{
			Method: req.Method,
			URL:    req.URL.String(),
			Header: req.Header.Clone(),
			Body:   string(b),
		})
		r.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(status, body))
	t.Cleanup(server.Close)
	return server, rec
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		token   string
		wantURL string
		wantErr error
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080",
			token:   "test-token",
			wantURL: "http://localhost:8080",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "https://api.example.com/",
			token:   "test-token",
			wantURL: "https://api.example.com",
		},
		{
			name:    "default base URL",
			token:   "test-token",
			wantURL: DefaultBaseURL,
		},
		{
			name:    "missing token",
			baseURL: "http://localhost:8080",
			wantErr: ErrMissingToken,
		},
		{
			name:    "relative base URL",
			baseURL: "api.tikhub.io",
			token:   "test-token",
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://api.tikhub.io",
			token:   "test-token",
			wantErr: ErrInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewAuthenticatedClient(tt.baseURL, tt.token, logger)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, c.BaseURL())
			assert.True(t, c.Authenticated())
		})
	}

	c, err := NewClient("", logger)
	require.NoError(t, err)
	assert.False(t, c.Authenticated())
	assert.Equal(t, DefaultTimeout, c.HTTPClient().Timeout)
}

func TestClientOptions(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)

	c, err := NewAuthenticatedClient(server.URL, "secret", zerolog.Nop(),
		WithTimeout(5*time.Second),
		WithHeader("X-Trace", "abc"),
		WithCookie("session", "s1"),
		WithUserAgent("tikhub-test/1.0"),
		WithRaiseOnUnexpectedStatus(true),
	)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.HTTPClient().Timeout)
	assert.True(t, c.RaiseOnUnexpectedStatus())

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "cat"})
	require.NoError(t, err)

	require.Len(t, rec.requests, 1)
	got := rec.requests[0]
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
	assert.Equal(t, "tikhub-test/1.0", got.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "session=s1", got.Header.Get("Cookie"))
}

func TestAuthHeaderCustomisation(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantHeader string
		wantValue  string
	}{
		{"default bearer", nil, "Authorization", "Bearer tok"},
		{"custom prefix", []Option{WithAuthPrefix("Token")}, "Authorization", "Token tok"},
		{"raw token", []Option{WithAuthHeaderName("X-API-Key"), WithAuthPrefix("")}, "X-API-Key", "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, rec := newTestServer(t, http.StatusOK, okBody)
			c, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop(), tt.opts...)
			require.NoError(t, err)

			_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
			require.NoError(t, err)
			require.Len(t, rec.requests, 1)
			assert.Equal(t, tt.wantValue, rec.requests[0].Header.Get(tt.wantHeader))
		})
	}
}

func TestUnauthenticatedClientSendsNoToken(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)
	c, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	require.NoError(t, err)
	assert.Empty(t, rec.requests[0].Header.Get("Authorization"))
}

func TestUnsetParametersAreOmitted(t *testing.T) {
	tests := []struct {
		name      string
		params    searchParams
		wantQuery string
	}{
		{
			name:      "only required",
			params:    searchParams{Keyword: "cat"},
			wantQuery: "keyword=cat",
		},
		{
			name:      "null dropped",
			params:    searchParams{Keyword: "cat", Region: optional.Null[string]()},
			wantQuery: "keyword=cat",
		},
		{
			name:      "zero value still sent when set",
			params:    searchParams{Keyword: "cat", Cursor: optional.Of(0)},
			wantQuery: "cursor=0&keyword=cat",
		},
		{
			name:      "all set",
			params:    searchParams{Keyword: "cat", Cursor: optional.Of(20), Region: optional.Of("US")},
			wantQuery: "cursor=20&keyword=cat&region=US",
		},
		{
			name:      "empty required value kept",
			params:    searchParams{},
			wantQuery: "keyword=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("https://api.example.com", zerolog.Nop())
			require.NoError(t, err)

			req, err := searchEndpoint.NewRequest(context.Background(), c, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, req.URL.RawQuery)
			assert.Equal(t, "/api/v1/test/search", req.URL.Path)
		})
	}
}

func TestValuesQuery(t *testing.T) {
	ep := Get[Values, models.ResponseModel]("/api/v1/raw")
	c, err := NewClient("https://api.example.com", zerolog.Nop())
	require.NoError(t, err)

	req, err := ep.NewRequest(context.Background(), c, Values{"a": "1", "b": ""})
	require.NoError(t, err)
	assert.Equal(t, "a=1", req.URL.RawQuery)
}

func TestPostBody(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)
	c, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop())
	require.NoError(t, err)

	body := models.TikTokVideoBatchRequest{AwemeIDs: []string{"1", "2"}}
	result, err := batchEndpoint.Do(context.Background(), c, body)
	require.NoError(t, err)
	require.NotNil(t, result.OK)

	got := rec.requests[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"aweme_ids":["1","2"]}`, got.Body)
}

func TestCallShapesSendIdenticalRequests(t *testing.T) {
	ctx := context.Background()
	params := searchParams{Keyword: "cat", Cursor: optional.Of(10)}

	t.Run("GET", func(t *testing.T) {
		server, rec := newTestServer(t, http.StatusOK, okBody)
		c, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop(), WithHeader("X-A", "1"))
		require.NoError(t, err)

		_, err = searchEndpoint.Detailed(ctx, c, params)
		require.NoError(t, err)
		_, err = searchEndpoint.Do(ctx, c, params)
		require.NoError(t, err)
		_, err = searchEndpoint.DetailedAsync(ctx, c, params).Wait()
		require.NoError(t, err)
		_, err = searchEndpoint.Async(ctx, c, params).Wait()
		require.NoError(t, err)

		require.Len(t, rec.requests, 4)
		for _, r := range rec.requests[1:] {
			assert.Equal(t, rec.requests[0], r)
		}
	})

	t.Run("POST", func(t *testing.T) {
		server, rec := newTestServer(t, http.StatusOK, okBody)
		c, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop())
		require.NoError(t, err)

		body := models.TikTokVideoBatchRequest{AwemeIDs: []string{"9"}, Region: optional.Of("JP")}
		_, err = batchEndpoint.Detailed(ctx, c, body)
		require.NoError(t, err)
		_, err = batchEndpoint.Do(ctx, c, body)
		require.NoError(t, err)
		_, err = batchEndpoint.DetailedAsync(ctx, c, body).Wait()
		require.NoError(t, err)
		_, err = batchEndpoint.Async(ctx, c, body).Wait()
		require.NoError(t, err)

		require.Len(t, rec.requests, 4)
		for _, r := range rec.requests[1:] {
			assert.Equal(t, rec.requests[0], r)
		}
	})
}

func TestStatusDiscrimination(t *testing.T) {
	const invalidBody = `{"detail":[{"loc":["query","keyword"],"msg":"field required","type":"value_error.missing"}]}`

	tests := []struct {
		name        string
		status      int
		body        string
		raise       bool
		wantOK      bool
		wantInvalid bool
		wantNil     bool
		wantStatus  bool
	}{
		{name: "200 decodes success", status: http.StatusOK, body: okBody, wantOK: true},
		{name: "422 decodes validation error", status: http.StatusUnprocessableEntity, body: invalidBody, wantInvalid: true},
		{name: "422 with raise still decodes", status: http.StatusUnprocessableEntity, body: invalidBody, raise: true, wantInvalid: true},
		{name: "500 swallowed", status: http.StatusInternalServerError, body: "boom", wantNil: true},
		{name: "500 raised", status: http.StatusInternalServerError, body: "boom", raise: true, wantStatus: true},
		{name: "404 raised", status: http.StatusNotFound, body: `{"code":200}`, raise: true, wantStatus: true},
		{name: "201 is unexpected", status: http.StatusCreated, body: okBody, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, tt.body)
			c, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop(), WithRaiseOnUnexpectedStatus(tt.raise))
			require.NoError(t, err)

			resp, err := searchEndpoint.Detailed(context.Background(), c, searchParams{Keyword: "cat"})

			if tt.wantStatus {
				require.Error(t, err)
				assert.Nil(t, resp)
				var statusErr *UnexpectedStatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, tt.status, statusErr.StatusCode)
				assert.Equal(t, []byte(tt.body), statusErr.Content)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, []byte(tt.body), resp.Content)
			assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))

			switch {
			case tt.wantNil:
				assert.Nil(t, resp.Parsed)
			case tt.wantOK:
				require.NotNil(t, resp.Parsed)
				require.NotNil(t, resp.Parsed.OK)
				assert.Nil(t, resp.Parsed.Invalid)
				assert.Equal(t, 200, resp.Parsed.OK.Code)
				assert.NoError(t, resp.Parsed.Err())
			case tt.wantInvalid:
				require.NotNil(t, resp.Parsed)
				assert.Nil(t, resp.Parsed.OK)
				require.NotNil(t, resp.Parsed.Invalid)
				assert.Error(t, resp.Parsed.Err())
				details, _ := resp.Parsed.Invalid.Detail.Get()
				require.Len(t, details, 1)
				assert.Equal(t, "query.keyword", details[0].Path())
			}
		})
	}
}

func TestDoWithoutRaiseReturnsNil(t *testing.T) {
	server, _ := newTestServer(t, http.StatusServiceUnavailable, "down")
	c, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	result, err := searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = searchEndpoint.Async(context.Background(), c, searchParams{Keyword: "x"}).Wait()
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestDecodeError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"router":"/x"}`)
	c, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRedirectsNotFollowedByDefault(t *testing.T) {
	target, _ := newTestServer(t, http.StatusOK, okBody)
	redirect := httptest.NewServer(http.RedirectHandler(target.URL+"/api/v1/test/search", http.StatusFound))
	t.Cleanup(redirect.Close)

	c, err := NewClient(redirect.URL, zerolog.Nop(), WithRaiseOnUnexpectedStatus(true))
	require.NoError(t, err)

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	var statusErr *UnexpectedStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusFound, statusErr.StatusCode)

	following, err := NewClient(redirect.URL, zerolog.Nop(), WithFollowRedirects(true))
	require.NoError(t, err)

	result, err := searchEndpoint.Do(context.Background(), following, searchParams{Keyword: "x"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.OK)
}

func TestCopyOnWrite(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)
	base, err := NewAuthenticatedClient(server.URL, "tok", zerolog.Nop())
	require.NoError(t, err)

	derived := base.
		WithHeaders(map[string]string{"X-Extra": "1"}).
		WithCookies(map[string]string{"b": "2", "a": "1"}).
		WithTimeout(2 * time.Second)

	assert.Equal(t, DefaultTimeout, base.HTTPClient().Timeout)
	assert.Equal(t, 2*time.Second, derived.HTTPClient().Timeout)

	ctx := context.Background()
	_, err = searchEndpoint.Do(ctx, base, searchParams{Keyword: "x"})
	require.NoError(t, err)
	_, err = searchEndpoint.Do(ctx, derived, searchParams{Keyword: "x"})
	require.NoError(t, err)

	require.Len(t, rec.requests, 2)
	assert.Empty(t, rec.requests[0].Header.Get("X-Extra"))
	assert.Empty(t, rec.requests[0].Header.Get("Cookie"))
	assert.Equal(t, "1", rec.requests[1].Header.Get("X-Extra"))
	assert.Equal(t, "a=1; b=2", rec.requests[1].Header.Get("Cookie"))
	assert.Equal(t, "Bearer tok", rec.requests[1].Header.Get("Authorization"))
}

func TestRateLimit(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)
	c, err := NewClient(server.URL, zerolog.Nop(), WithRateLimit(1, 1))
	require.NoError(t, err)

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	require.NoError(t, err)

	// The bucket is empty now; a short deadline cannot wait for the next token.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = searchEndpoint.Do(ctx, c, searchParams{Keyword: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Len(t, rec.requests, 1)
}

func TestUnexpectedStatusErrorClassifiers(t *testing.T) {
	tests := []struct {
		status       int
		notFound     bool
		unauthorized bool
		rateLimited  bool
		serverError  bool
	}{
		{status: 404, notFound: true},
		{status: 401, unauthorized: true},
		{status: 403, unauthorized: true},
		{status: 429, rateLimited: true},
		{status: 502, serverError: true},
		{status: 302},
	}

	for _, tt := range tests {
		e := &UnexpectedStatusError{StatusCode: tt.status, Content: []byte("x")}
		assert.Equal(t, tt.notFound, e.IsNotFound(), tt.status)
		assert.Equal(t, tt.unauthorized, e.IsUnauthorized(), tt.status)
		assert.Equal(t, tt.rateLimited, e.IsRateLimited(), tt.status)
		assert.Equal(t, tt.serverError, e.IsServerError(), tt.status)
		assert.Contains(t, e.Error(), "unexpected status")
	}
}

func TestIsRecognisedStatus(t *testing.T) {
	assert.True(t, IsRecognisedStatus(200))
	assert.True(t, IsRecognisedStatus(422))
	assert.False(t, IsRecognisedStatus(400))
}

func TestDecodeData(t *testing.T) {
	var ok models.ResponseModel
	require.NoError(t, json.Unmarshal([]byte(okBody), &ok))

	type payload struct {
		Items []int `json:"items"`
	}
	got, err := DecodeData[payload](&Result[models.ResponseModel]{OK: &ok})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.Items)

	_, err = DecodeData[payload](nil)
	assert.ErrorIs(t, err, ErrNoResult)

	invalid := &models.HTTPValidationError{}
	_, err = DecodeData[payload](&Result[models.ResponseModel]{Invalid: invalid})
	var validation *models.HTTPValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = DecodeData[payload](&Result[models.ResponseModel]{OK: &models.ResponseModel{Code: 200}})
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestPing(t *testing.T) {
	server, rec := newTestServer(t, http.StatusNotFound, ``)
	c, err := NewAuthenticatedClient(server.URL, "secret", zerolog.Nop(),
		WithCookie("session", "abc"),
		WithHeader("X-Source", "cli"))
	require.NoError(t, err)

	status, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	require.Len(t, rec.requests, 1)
	got := rec.requests[0]
	assert.Equal(t, http.MethodHead, got.Method)
	assert.Equal(t, "/", got.URL)
	assert.Equal(t, "cli", got.Header.Get("X-Source"))
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Empty(t, got.Header.Get("Cookie"))

	server.Close()
	_, err = c.Ping(context.Background())
	assert.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, okBody)
	base, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	logged := base.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel).With().Str("aweme_id", "42").Logger())

	_, err = searchEndpoint.Do(context.Background(), base, searchParams{Keyword: "x"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	_, err = searchEndpoint.Do(context.Background(), logged, searchParams{Keyword: "x"})
	require.NoError(t, err)

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "TikHub API request", event["message"])
	assert.Equal(t, "/api/v1/test/search", event["path"])
	assert.Equal(t, "42", event["aweme_id"])
	assert.EqualValues(t, http.StatusOK, event["status"])
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestWithHTTPClient(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, okBody)

	var seen int
	custom := &http.Client{
		Timeout: 5 * time.Second,
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen++
			req.Header.Set("X-Via", "custom")
			return http.DefaultTransport.RoundTrip(req)
		}),
	}

	c, err := NewClient(server.URL, zerolog.Nop(), WithHTTPClient(custom))
	require.NoError(t, err)

	_, err = searchEndpoint.Do(context.Background(), c, searchParams{Keyword: "x"})
	require.NoError(t, err)

	assert.Equal(t, 1, seen)
	require.Len(t, rec.requests, 1)
	assert.Equal(t, "custom", rec.requests[0].Header.Get("X-Via"))

	// The supplied client is copied, not modified.
	assert.NotSame(t, custom, c.HTTPClient())
	assert.Nil(t, custom.CheckRedirect)
	assert.Equal(t, DefaultTimeout, c.HTTPClient().Timeout)
}

func TestWithInsecureSkipVerify(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewTLSServer(rec.handler(http.StatusOK, okBody))
	t.Cleanup(server.Close)

	strict, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)
	_, err = searchEndpoint.Do(context.Background(), strict, searchParams{Keyword: "x"})
	require.Error(t, err)

	insecure, err := NewClient(server.URL, zerolog.Nop(), WithInsecureSkipVerify())
	require.NoError(t, err)
	result, err := searchEndpoint.Do(context.Background(), insecure, searchParams{Keyword: "x"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.OK)

	tr, ok := insecure.HTTPClient().Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	assert.NotSame(t, http.DefaultTransport, tr)
}
