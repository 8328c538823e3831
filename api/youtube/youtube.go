// Package youtube wraps the YouTube web endpoints.
package youtube

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// VideoInfoParams identifies a video.
type VideoInfoParams struct {
	VideoID string `url:"video_id"`
}

// ChannelParams identifies a channel.
type ChannelParams struct {
	ChannelID string `url:"channel_id"`
}

// SearchVideoParams is a keyword search over videos.
type SearchVideoParams struct {
	SearchQuery       string                 `url:"search_query"`
	LanguageCode      optional.Value[string] `url:"language_code"`
	OrderBy           optional.Value[string] `url:"order_by"`
	CountryCode       optional.Value[string] `url:"country_code"`
	ContinuationToken optional.Value[string] `url:"continuation_token"`
}

// NewSearchVideoParams returns the first page of an English search for query.
func NewSearchVideoParams(query string) SearchVideoParams {
	return SearchVideoParams{
		SearchQuery:  query,
		LanguageCode: optional.Of("en"),
		OrderBy:      optional.Of("this_month"),
		CountryCode:  optional.Of("us"),
	}
}

var (
	GetVideoInfo   = client.Get[VideoInfoParams, models.ResponseModel]("/api/v1/youtube/web/get_video_info")
	GetChannelInfo = client.Get[ChannelParams, models.ResponseModel]("/api/v1/youtube/web/get_channel_info")
	SearchVideo    = client.Get[SearchVideoParams, models.ResponseModel]("/api/v1/youtube/web/search_video")
)
