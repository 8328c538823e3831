// Package hybrid wraps the cross-platform parsing endpoints, which accept a
// share link from any supported platform.
package hybrid

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// VideoDataParams are the query parameters of VideoData.
type VideoDataParams struct {
	// URL is a share link or page URL from TikTok, Douyin, Bilibili and others.
	URL string `url:"url"`
	// Minimal trims the payload down to the common fields.
	Minimal optional.Value[bool] `url:"minimal"`
}

// NewVideoDataParams returns params for url with Minimal off.
func NewVideoDataParams(url string) VideoDataParams {
	return VideoDataParams{URL: url, Minimal: optional.Of(false)}
}

// VideoData parses a single video from a share link.
var VideoData = client.Get[VideoDataParams, models.ResponseModel]("/api/v1/hybrid/video_data")
