// Package optional provides the tri-state value used for optional request
// parameters and optional model fields.
//
// A Value is either unset (the zero value), explicitly null, or set to a
// value. Unset and null are distinct: an unset model field is left out of the
// encoded JSON, a null one is written as null. In a query string both are
// dropped.
package optional

import (
	"bytes"
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

type state uint8

const (
	unset state = iota
	null
	set
)

// Value holds an optional T.
type Value[T any] struct {
	v T
	s state
}

// Of returns a Value set to v.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, s: set}
}

// Null returns an explicitly null Value.
func Null[T any]() Value[T] {
	return Value[T]{s: null}
}

// FromPtr returns a Value set to *p, or an unset Value when p is nil.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

// IsSet reports whether the value carries data.
func (o Value[T]) IsSet() bool { return o.s == set }

// IsNull reports whether the value was explicitly set to null.
func (o Value[T]) IsNull() bool { return o.s == null }

// IsUnset reports whether the value was never provided.
func (o Value[T]) IsUnset() bool { return o.s == unset }

// IsZero is an alias of IsUnset so that encoders honouring omitzero skip
// unset values.
func (o Value[T]) IsZero() bool { return o.s == unset }

// Get returns the held value and whether it is set.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.s == set
}

// OrElse returns the held value, or def when unset or null.
func (o Value[T]) OrElse(def T) T {
	if o.s == set {
		return o.v
	}
	return def
}

// Ptr returns a pointer to a copy of the held value, nil unless set.
func (o Value[T]) Ptr() *T {
	if o.s != set {
		return nil
	}
	v := o.v
	return &v
}

func (o Value[T]) String() string {
	switch o.s {
	case set:
		return fmt.Sprint(o.v)
	case null:
		return "null"
	default:
		return "unset"
	}
}

// EncodeValues implements query.Encoder from google/go-querystring. Unset and
// null values add nothing; slices add one entry per element.
func (o Value[T]) EncodeValues(key string, v *url.Values) error {
	if o.s != set {
		return nil
	}

	rv := reflect.ValueOf(o.v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if _, ok := any(o.v).([]byte); !ok {
			for i := 0; i < rv.Len(); i++ {
				s, err := FormatQuery(rv.Index(i).Interface())
				if err != nil {
					return fmt.Errorf("encode %s[%d]: %w", key, i, err)
				}
				v.Add(key, s)
			}
			return nil
		}
	}

	s, err := FormatQuery(o.v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	v.Add(key, s)
	return nil
}

// FormatQuery renders a single value the way it is written in a query string.
func FormatQuery(x any) (string, error) {
	switch t := x.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case []byte:
		return string(t), nil
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(x), nil
	}
}

// MarshalJSON writes the held value, or null when unset or null. Models drop
// unset fields before they get here.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if o.s != set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON sets the value to null on a JSON null and to the decoded
// value otherwise. A field absent from the payload stays unset.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.v, o.s = zero, null
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.v, o.s = v, set
	return nil
}
