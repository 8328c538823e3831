package models

import (
	"time"

	"github.com/s0up4200/tikhub/optional"
)

// APIKeyInfo is the data payload of the account info endpoint.
type APIKeyInfo struct {
	Name      string
	Status    APIKeyStatus
	Scopes    []string
	CreatedAt time.Time
	// ExpiresAt is unset for keys that never expire.
	ExpiresAt optional.Value[time.Time]

	AdditionalProperties map[string]any

	// Layouts the timestamps arrived in, reused when encoding.
	createdLayout string
	expiresLayout string
}

// Expired reports whether the key has passed its expiry at now.
func (k *APIKeyInfo) Expired(now time.Time) bool {
	if k.Status == APIKeyStatusExpired {
		return true
	}
	exp, ok := k.ExpiresAt.Get()
	return ok && now.After(exp)
}

// MarshalJSON implements json.Marshaler.
func (k APIKeyInfo) MarshalJSON() ([]byte, error) {
	f := newFields(k.AdditionalProperties)
	f.set("api_key_name", k.Name)
	f.set("api_key_status", string(k.Status))
	scopes := k.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	f.set("api_key_scopes", scopes)
	f.set("created_at", formatISOTime(k.CreatedAt, k.createdLayout, time.RFC3339Nano))
	switch {
	case k.ExpiresAt.IsNull():
		f.set("expires_at", nil)
	case k.ExpiresAt.IsSet():
		exp, _ := k.ExpiresAt.Get()
		f.set("expires_at", formatISOTime(exp, k.expiresLayout, time.RFC3339Nano))
	}
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *APIKeyInfo) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out APIKeyInfo
	if err := o.popRequired("api_key_name", &out.Name); err != nil {
		return err
	}

	status, ok, err := popEnum(o, "api_key_status", ParseAPIKeyStatus)
	if err != nil {
		return err
	}
	if !ok {
		return missing("api_key_status")
	}
	out.Status = status

	if err := o.pop("api_key_scopes", &out.Scopes); err != nil {
		return err
	}
	if out.CreatedAt, out.createdLayout, _, err = popTime(o, "created_at", true); err != nil {
		return err
	}

	if raw, present := o["expires_at"]; present && isNull(raw) {
		delete(o, "expires_at")
		out.ExpiresAt = optional.Null[time.Time]()
	} else {
		exp, layout, ok, err := popTime(o, "expires_at", false)
		if err != nil {
			return err
		}
		if ok {
			out.ExpiresAt = optional.Of(exp)
			out.expiresLayout = layout
		}
	}

	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*k = out
	return nil
}

// DailyUsage is one day of request accounting.
type DailyUsage struct {
	Date             time.Time
	RequestCount     int
	PaidRequestCount int
	FreeRequestCount int
	Cost             optional.Value[float64]

	AdditionalProperties map[string]any

	layout string
}

// MarshalJSON implements json.Marshaler.
func (u DailyUsage) MarshalJSON() ([]byte, error) {
	f := newFields(u.AdditionalProperties)
	f.set("date", formatISOTime(u.Date, u.layout, dateLayout))
	f.set("request_count", u.RequestCount)
	f.set("paid_request_count", u.PaidRequestCount)
	f.set("free_request_count", u.FreeRequestCount)
	setOptional(f, "cost", u.Cost)
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *DailyUsage) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out DailyUsage
	if out.Date, out.layout, _, err = popTime(o, "date", true); err != nil {
		return err
	}
	for key, dst := range map[string]*int{
		"request_count":      &out.RequestCount,
		"paid_request_count": &out.PaidRequestCount,
		"free_request_count": &out.FreeRequestCount,
	} {
		if err := o.popRequired(key, dst); err != nil {
			return err
		}
	}
	if err := o.pop("cost", &out.Cost); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*u = out
	return nil
}
