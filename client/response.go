package client

import (
	"fmt"
	"net/http"

	"github.com/s0up4200/tikhub/models"
)

// Result is the decoded body of a recognised status. Exactly one field is
// non-nil: OK for 200, Invalid for 422.
type Result[T any] struct {
	OK      *T
	Invalid *models.HTTPValidationError
}

// Err returns the validation error carried by a 422 result, or nil.
func (r *Result[T]) Err() error {
	if r == nil || r.Invalid == nil {
		return nil
	}
	return r.Invalid
}

// Response pairs the raw HTTP response with its decoded body. Parsed is nil
// when the status was neither 200 nor 422.
type Response[T any] struct {
	StatusCode int
	Content    []byte
	Headers    http.Header
	Parsed     *Result[T]
}

// DecodeData unpacks the data payload of a successful envelope into D. A 422
// result returns its validation error and a nil result returns ErrNoResult.
func DecodeData[D any](r *Result[models.ResponseModel]) (*D, error) {
	if r == nil {
		return nil, ErrNoResult
	}
	if r.Invalid != nil {
		return nil, r.Invalid
	}

	var out D
	if err := r.OK.DecodeData(&out); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrDecode, err)
	}
	return &out, nil
}
