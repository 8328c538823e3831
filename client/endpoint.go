package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
	"github.com/s0up4200/tikhub/models"
)

// QueryEncoder is implemented by params types that build their own query
// string instead of relying on url struct tags.
type QueryEncoder interface {
	QueryValues() (url.Values, error)
}

// Values is an ad-hoc parameter set. Empty values are dropped.
type Values map[string]string

// QueryValues implements QueryEncoder.
func (v Values) QueryValues() (url.Values, error) {
	out := url.Values{}
	for k, val := range v {
		if val == "" {
			continue
		}
		out.Set(k, val)
	}
	return out, nil
}

type encodeFunc[P any] func(P) (url.Values, []byte, error)

// Endpoint is one REST operation. P is the argument type (a query params
// struct for GET, the JSON body for POST) and T the model a 200 decodes into.
//
// The four call shapes share NewRequest, so for the same argument they put
// identical requests on the wire.
type Endpoint[P, T any] struct {
	method string
	path   string
	encode encodeFunc[P]
}

// Get declares a GET endpoint whose params are sent as the query string.
func Get[P, T any](path string) Endpoint[P, T] {
	return Endpoint[P, T]{
		method: http.MethodGet,
		path:   path,
		encode: func(p P) (url.Values, []byte, error) {
			q, err := encodeQuery(p)
			return q, nil, err
		},
	}
}

// Post declares a POST endpoint whose argument is sent as a JSON body.
func Post[B, T any](path string) Endpoint[B, T] {
	return Endpoint[B, T]{
		method: http.MethodPost,
		path:   path,
		encode: func(b B) (url.Values, []byte, error) {
			body, err := json.Marshal(b)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			return nil, body, nil
		},
	}
}

// PostWithQuery declares a POST endpoint that takes query params and a fixed
// empty JSON object body.
func PostWithQuery[P, T any](path string) Endpoint[P, T] {
	return Endpoint[P, T]{
		method: http.MethodPost,
		path:   path,
		encode: func(p P) (url.Values, []byte, error) {
			q, err := encodeQuery(p)
			return q, []byte("{}"), err
		},
	}
}

func encodeQuery(p any) (url.Values, error) {
	if p == nil {
		return url.Values{}, nil
	}
	if e, ok := p.(QueryEncoder); ok {
		return e.QueryValues()
	}
	q, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query parameters: %w", err)
	}
	return q, nil
}

// Method returns the HTTP method.
func (e Endpoint[P, T]) Method() string { return e.method }

// Path returns the path below the base URL.
func (e Endpoint[P, T]) Path() string { return e.path }

// NewRequest builds the request every call shape sends.
func (e Endpoint[P, T]) NewRequest(ctx context.Context, c *Client, p P) (*http.Request, error) {
	q, body, err := e.encode(p)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + e.path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, e.method, u, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.prepare(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Detailed sends the request and returns the full response. With the raise
// flag on, an unexpected status returns a nil response and an
// *UnexpectedStatusError.
func (e Endpoint[P, T]) Detailed(ctx context.Context, c *Client, p P) (*Response[T], error) {
	req, err := e.NewRequest(ctx, c, p)
	if err != nil {
		return nil, err
	}

	raw, err := c.send(req)
	if err != nil {
		return nil, err
	}

	parsed, err := parseResponse[T](c, raw)
	if err != nil {
		return nil, err
	}

	return &Response[T]{
		StatusCode: raw.statusCode,
		Content:    raw.content,
		Headers:    raw.headers,
		Parsed:     parsed,
	}, nil
}

// Do sends the request and returns only the decoded body. The result is nil
// for an unexpected status when the client does not raise.
func (e Endpoint[P, T]) Do(ctx context.Context, c *Client, p P) (*Result[T], error) {
	resp, err := e.Detailed(ctx, c, p)
	if err != nil {
		return nil, err
	}
	return resp.Parsed, nil
}

// DetailedAsync runs Detailed in a goroutine.
func (e Endpoint[P, T]) DetailedAsync(ctx context.Context, c *Client, p P) *Future[*Response[T]] {
	return Go(ctx, func(ctx context.Context) (*Response[T], error) {
		return e.Detailed(ctx, c, p)
	})
}

// Async runs Do in a goroutine.
func (e Endpoint[P, T]) Async(ctx context.Context, c *Client, p P) *Future[*Result[T]] {
	return Go(ctx, func(ctx context.Context) (*Result[T], error) {
		return e.Do(ctx, c, p)
	})
}

// recognised lists the statuses that decode into a model.
var recognised = []int{http.StatusOK, http.StatusUnprocessableEntity}

func parseResponse[T any](c *Client, raw *rawResponse) (*Result[T], error) {
	switch raw.statusCode {
	case http.StatusOK:
		var out T
		if err := json.Unmarshal(raw.content, &out); err != nil {
			return nil, fmt.Errorf("%w: status %d: %w", ErrDecode, raw.statusCode, err)
		}
		return &Result[T]{OK: &out}, nil

	case http.StatusUnprocessableEntity:
		var invalid models.HTTPValidationError
		if err := json.Unmarshal(raw.content, &invalid); err != nil {
			return nil, fmt.Errorf("%w: status %d: %w", ErrDecode, raw.statusCode, err)
		}
		return &Result[T]{Invalid: &invalid}, nil
	}

	if c.raise {
		return nil, &UnexpectedStatusError{StatusCode: raw.statusCode, Content: raw.content}
	}

	c.logger.Debug().
		Int("status", raw.statusCode).
		Ints("recognised", recognised).
		Msg("Ignoring unexpected TikHub status")
	return nil, nil
}

// IsRecognisedStatus reports whether status decodes into a model.
func IsRecognisedStatus(status int) bool {
	return slices.Contains(recognised, status)
}
