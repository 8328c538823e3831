package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/s0up4200/tikhub/optional"
)

var (
	// ErrMissingField is returned when a required field is absent from a payload.
	ErrMissingField = errors.New("missing required field")
	// ErrNotObject is returned when a model is decoded from something other than a JSON object.
	ErrNotObject = errors.New("expected a JSON object")
	// ErrUnknownEnum is returned when an enum field carries a value outside its set.
	ErrUnknownEnum = errors.New("unknown enum value")
	// ErrNoData is returned by ResponseModel.DecodeData when the payload has no data.
	ErrNoData = errors.New("response has no data")
)

// object is a decoded JSON object whose declared fields get popped one at a
// time; what is left over becomes the additional properties.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	var o object
	if err := json.Unmarshal(trimmed, &o); err != nil {
		return nil, err
	}
	if o == nil {
		o = object{}
	}
	return o, nil
}

// pop decodes key into dst and removes it. A missing key leaves dst untouched.
func (o object) pop(key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	delete(o, key)

	// Unmarshalers see null themselves; optional values record it.
	var err error
	if u, ok := dst.(json.Unmarshaler); ok && isNull(raw) {
		err = u.UnmarshalJSON(raw)
	} else {
		err = json.Unmarshal(raw, dst)
	}
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// popRequired is pop for fields that must be present and not null.
func (o object) popRequired(key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return missing(key)
	}
	if isNull(raw) {
		return fmt.Errorf("%w: %q is null", ErrMissingField, key)
	}
	return o.pop(key, dst)
}

// popRaw removes key and returns its compacted raw value, or nil when absent.
func (o object) popRaw(key string) (json.RawMessage, error) {
	raw, ok := o[key]
	if !ok {
		return nil, nil
	}
	delete(o, key)

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// rest converts the remaining keys to generic values. Numbers stay json.Number
// so they are written back exactly as received.
func (o object) rest() (map[string]any, error) {
	if len(o) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(o))
	for key, raw := range o {
		var v any
		if err := decodeNumbers(raw, &v); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

// popNumbers is pop for optional generic values. Numbers inside stay
// json.Number.
func popNumbers[T any](o object, key string, dst *optional.Value[T]) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	delete(o, key)

	if isNull(raw) {
		*dst = optional.Null[T]()
		return nil
	}
	var v T
	if err := decodeNumbers(raw, &v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	*dst = optional.Of(v)
	return nil
}

func decodeNumbers(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}

// fields collects an encoded model. Additional properties go in first so that
// declared fields win on a name collision.
type fields map[string]any

func newFields(additional map[string]any) fields {
	f := make(fields, len(additional)+8)
	for k, v := range additional {
		f[k] = v
	}
	return f
}

func (f fields) set(key string, v any) {
	f[key] = v
}

func (f fields) marshal() ([]byte, error) {
	return json.Marshal(map[string]any(f))
}

// setOptional writes v unless it is unset; null is written as null.
func setOptional[T any](f fields, key string, v optional.Value[T]) {
	if v.IsUnset() {
		return
	}
	f[key] = v
}

func missing(key string) error {
	return fmt.Errorf("%w: %q", ErrMissingField, key)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
