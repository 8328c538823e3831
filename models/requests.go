package models

import (
	"github.com/s0up4200/tikhub/optional"
)

// DouyinSearchRequest is the body of the Douyin general search endpoint.
// Filters left unset are omitted and the server applies its defaults.
type DouyinSearchRequest struct {
	Keyword        string
	Cursor         optional.Value[int]
	SortType       optional.Value[SortType]
	PublishTime    optional.Value[PublishTime]
	FilterDuration optional.Value[FilterDuration]
	ContentType    optional.Value[ContentType]
	SearchID       optional.Value[string]

	AdditionalProperties map[string]any
}

// NewDouyinSearchRequest returns a request for keyword with the documented
// defaults filled in.
func NewDouyinSearchRequest(keyword string) DouyinSearchRequest {
	return DouyinSearchRequest{
		Keyword:        keyword,
		Cursor:         optional.Of(0),
		SortType:       optional.Of(SortTypeComprehensive),
		PublishTime:    optional.Of(PublishTimeAny),
		FilterDuration: optional.Of(FilterDurationAny),
		ContentType:    optional.Of(ContentTypeAny),
	}
}

// MarshalJSON implements json.Marshaler.
func (r DouyinSearchRequest) MarshalJSON() ([]byte, error) {
	f := newFields(r.AdditionalProperties)
	f.set("keyword", r.Keyword)
	setOptional(f, "cursor", r.Cursor)
	setOptional(f, "sort_type", r.SortType)
	setOptional(f, "publish_time", r.PublishTime)
	setOptional(f, "filter_duration", r.FilterDuration)
	setOptional(f, "content_type", r.ContentType)
	setOptional(f, "search_id", r.SearchID)
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler. Enum fields reject values outside
// their documented set.
func (r *DouyinSearchRequest) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out DouyinSearchRequest
	if err := o.popRequired("keyword", &out.Keyword); err != nil {
		return err
	}
	if err := o.pop("cursor", &out.Cursor); err != nil {
		return err
	}
	if err := o.pop("search_id", &out.SearchID); err != nil {
		return err
	}
	if out.SortType, err = popOptionalEnum(o, "sort_type", ParseSortType); err != nil {
		return err
	}
	if out.PublishTime, err = popOptionalEnum(o, "publish_time", ParsePublishTime); err != nil {
		return err
	}
	if out.FilterDuration, err = popOptionalEnum(o, "filter_duration", ParseFilterDuration); err != nil {
		return err
	}
	if out.ContentType, err = popOptionalEnum(o, "content_type", ParseContentType); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*r = out
	return nil
}

// TikTokVideoBatchRequest is the body of the TikTok batch video endpoint.
type TikTokVideoBatchRequest struct {
	AwemeIDs []string
	Region   optional.Value[string]

	AdditionalProperties map[string]any
}

// MarshalJSON implements json.Marshaler.
func (r TikTokVideoBatchRequest) MarshalJSON() ([]byte, error) {
	f := newFields(r.AdditionalProperties)
	ids := r.AwemeIDs
	if ids == nil {
		ids = []string{}
	}
	f.set("aweme_ids", ids)
	setOptional(f, "region", r.Region)
	return f.marshal()
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *TikTokVideoBatchRequest) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out TikTokVideoBatchRequest
	if err := o.popRequired("aweme_ids", &out.AwemeIDs); err != nil {
		return err
	}
	if err := o.pop("region", &out.Region); err != nil {
		return err
	}
	if out.AdditionalProperties, err = o.rest(); err != nil {
		return err
	}

	*r = out
	return nil
}

// popOptionalEnum pops an enum that may be absent or null.
func popOptionalEnum[E ~string](o object, key string, parse func(string) (E, error)) (optional.Value[E], error) {
	if raw, ok := o[key]; ok && isNull(raw) {
		delete(o, key)
		return optional.Null[E](), nil
	}

	e, ok, err := popEnum(o, key, parse)
	if err != nil || !ok {
		return optional.Value[E]{}, err
	}
	return optional.Of(e), nil
}
