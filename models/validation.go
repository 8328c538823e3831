package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/s0up4200/tikhub/optional"
)

// LocItem is one element of a validation error location: either a field name
// or a list index.
type LocItem struct {
	name  string
	index int
	isIdx bool
}

// LocName returns a location element naming a field.
func LocName(name string) LocItem { return LocItem{name: name} }

// LocIndex returns a location element pointing at a list index.
func LocIndex(i int) LocItem { return LocItem{index: i, isIdx: true} }

// Index returns the list index and whether the element is one.
func (l LocItem) Index() (int, bool) { return l.index, l.isIdx }

func (l LocItem) String() string {
	if l.isIdx {
		return strconv.Itoa(l.index)
	}
	return l.name
}

// MarshalJSON implements json.Marshaler.
func (l LocItem) MarshalJSON() ([]byte, error) {
	if l.isIdx {
		return json.Marshal(l.index)
	}
	return json.Marshal(l.name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LocItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LocName(s)
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("validation loc item must be a string or integer: %w", err)
	}
	*l = LocIndex(i)
	return nil
}

// ValidationError describes one rejected input.
type ValidationError struct {
	Loc  []LocItem
	Msg  string
	Type string

	AdditionalProperties map[string]any
}

// Path joins the location elements with dots, e.g. "query.aweme_id".
func (e ValidationError) Path() string {
	parts := make([]string, len(e.Loc))
	for i, l := range e.Loc {
		parts[i] = l.String()
	}
	return strings.Join(parts, ".")
}

// MarshalJSON implements json.Marshaler.
func (e ValidationError) MarshalJSON() ([]byte, error) {
	f := newFields(e.AdditionalProperties)
	loc := e.Loc
	if loc == nil {
		loc = []LocItem{}
	}
	f.set("loc", loc)
	f.set("msg", e.Msg)
	f.set("type", e.Type)
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *ValidationError) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out ValidationError
	if err := o.popRequired("loc", &out.Loc); err != nil {
		return err
	}
	if err := o.popRequired("msg", &out.Msg); err != nil {
		return err
	}
	if err := o.popRequired("type", &out.Type); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*e = out
	return nil
}

// HTTPValidationError is the body of a 422 response.
type HTTPValidationError struct {
	Detail optional.Value[[]ValidationError]

	AdditionalProperties map[string]any
}

// Error summarises the validation failures, one "path: msg" per entry.
func (e *HTTPValidationError) Error() string {
	details, _ := e.Detail.Get()
	if len(details) == 0 {
		return "request validation failed"
	}

	msgs := make([]string, len(details))
	for i, d := range details {
		msgs[i] = d.Path() + ": " + d.Msg
	}
	return "request validation failed: " + strings.Join(msgs, "; ")
}

// MarshalJSON implements json.Marshaler.
func (e HTTPValidationError) MarshalJSON() ([]byte, error) {
	f := newFields(e.AdditionalProperties)
	setOptional(f, "detail", e.Detail)
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *HTTPValidationError) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out HTTPValidationError
	if err := o.pop("detail", &out.Detail); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*e = out
	return nil
}
