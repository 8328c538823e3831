package models

import (
	"fmt"
	"slices"
)

// SortType orders Douyin search results.
type SortType string

const (
	SortTypeComprehensive SortType = "0"
	SortTypeMostLiked     SortType = "1"
	SortTypeLatest        SortType = "2"
)

// PublishTime restricts Douyin search results to a publish window.
type PublishTime string

const (
	PublishTimeAny       PublishTime = "0"
	PublishTimeLastDay   PublishTime = "1"
	PublishTimeLastWeek  PublishTime = "7"
	PublishTimeLastHalfY PublishTime = "180"
)

// FilterDuration restricts Douyin search results by video length.
type FilterDuration string

const (
	FilterDurationAny       FilterDuration = "0"
	FilterDurationUnder1Min FilterDuration = "0-1"
	FilterDuration1To5Min   FilterDuration = "1-5"
	FilterDurationOver5Min  FilterDuration = "5-10000"
)

// ContentType restricts Douyin search results by content kind.
type ContentType string

const (
	ContentTypeAny     ContentType = "0"
	ContentTypeVideo   ContentType = "1"
	ContentTypeGallery ContentType = "2"
	ContentTypeArticle ContentType = "3"
)

// APIKeyStatus is the lifecycle state of a TikHub API key.
type APIKeyStatus string

const (
	APIKeyStatusActive   APIKeyStatus = "active"
	APIKeyStatusExpired  APIKeyStatus = "expired"
	APIKeyStatusDisabled APIKeyStatus = "disabled"
)

var (
	sortTypes       = []SortType{SortTypeComprehensive, SortTypeMostLiked, SortTypeLatest}
	publishTimes    = []PublishTime{PublishTimeAny, PublishTimeLastDay, PublishTimeLastWeek, PublishTimeLastHalfY}
	filterDurations = []FilterDuration{FilterDurationAny, FilterDurationUnder1Min, FilterDuration1To5Min, FilterDurationOver5Min}
	contentTypes    = []ContentType{ContentTypeAny, ContentTypeVideo, ContentTypeGallery, ContentTypeArticle}
	apiKeyStatuses  = []APIKeyStatus{APIKeyStatusActive, APIKeyStatusExpired, APIKeyStatusDisabled}
)

// parseEnum coerces a wire value into E, rejecting anything outside allowed.
func parseEnum[E ~string](name, value string, allowed []E) (E, error) {
	e := E(value)
	if !slices.Contains(allowed, e) {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownEnum, name, value)
	}
	return e, nil
}

// ParseSortType validates a sort type value.
func ParseSortType(s string) (SortType, error) { return parseEnum("sort_type", s, sortTypes) }

// ParsePublishTime validates a publish time value.
func ParsePublishTime(s string) (PublishTime, error) {
	return parseEnum("publish_time", s, publishTimes)
}

// ParseFilterDuration validates a filter duration value.
func ParseFilterDuration(s string) (FilterDuration, error) {
	return parseEnum("filter_duration", s, filterDurations)
}

// ParseContentType validates a content type value.
func ParseContentType(s string) (ContentType, error) {
	return parseEnum("content_type", s, contentTypes)
}

// ParseAPIKeyStatus validates an API key status value.
func ParseAPIKeyStatus(s string) (APIKeyStatus, error) {
	return parseEnum("api_key_status", s, apiKeyStatuses)
}

func popEnum[E ~string](o object, key string, parse func(string) (E, error)) (E, bool, error) {
	if _, ok := o[key]; !ok {
		return "", false, nil
	}
	var s string
	if err := o.pop(key, &s); err != nil {
		return "", false, err
	}
	e, err := parse(s)
	if err != nil {
		return "", false, err
	}
	return e, true, nil
}
