package models

import (
	"github.com/goccy/go-json"
	"github.com/s0up4200/tikhub/optional"
)

// ResponseModel is the envelope every successful TikHub call returns. The
// platform payload itself is kept raw in Data; use DecodeData to unpack it.
// Numbers in Params and AdditionalProperties are json.Number.
type ResponseModel struct {
	Code      int
	RequestID optional.Value[string]
	Message   optional.Value[string]
	MessageZH optional.Value[string]
	Support   optional.Value[string]
	Time      optional.Value[string]
	TimeStamp optional.Value[int64]
	TimeZone  optional.Value[string]
	Docs      optional.Value[string]
	CacheURL  optional.Value[string]
	Router    optional.Value[string]
	Params    optional.Value[map[string]any]
	// Data is nil when the server sent no data key.
	Data json.RawMessage

	AdditionalProperties map[string]any
}

// DecodeData unmarshals the data payload into v.
func (m *ResponseModel) DecodeData(v any) error {
	if len(m.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(m.Data, v)
}

// MarshalJSON implements json.Marshaler.
func (m ResponseModel) MarshalJSON() ([]byte, error) {
	f := newFields(m.AdditionalProperties)
	f.set("code", m.Code)
	setOptional(f, "request_id", m.RequestID)
	setOptional(f, "message", m.Message)
	setOptional(f, "message_zh", m.MessageZH)
	setOptional(f, "support", m.Support)
	setOptional(f, "time", m.Time)
	setOptional(f, "time_stamp", m.TimeStamp)
	setOptional(f, "time_zone", m.TimeZone)
	setOptional(f, "docs", m.Docs)
	setOptional(f, "cache_url", m.CacheURL)
	setOptional(f, "router", m.Router)
	setOptional(f, "params", m.Params)
	if m.Data != nil {
		f.set("data", m.Data)
	}
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *ResponseModel) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out ResponseModel
	if err := o.popRequired("code", &out.Code); err != nil {
		return err
	}

	for key, dst := range map[string]any{
		"request_id": &out.RequestID,
		"message":    &out.Message,
		"message_zh": &out.MessageZH,
		"support":    &out.Support,
		"time":       &out.Time,
		"time_stamp": &out.TimeStamp,
		"time_zone":  &out.TimeZone,
		"docs":       &out.Docs,
		"cache_url":  &out.CacheURL,
		"router":     &out.Router,
	} {
		if err := o.pop(key, dst); err != nil {
			return err
		}
	}
	if err := popNumbers(o, "params", &out.Params); err != nil {
		return err
	}

	if out.Data, err = o.popRaw("data"); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*m = out
	return nil
}
