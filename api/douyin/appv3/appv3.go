// Package appv3 wraps the Douyin mobile app (v3) endpoints.
package appv3

import (
	"net/url"
	"strings"

	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// FetchOneVideoParams identifies a single post.
type FetchOneVideoParams struct {
	AwemeID string `url:"aweme_id"`
}

// FetchOneVideoByShareURLParams identifies a post by its share link.
type FetchOneVideoByShareURLParams struct {
	ShareURL string `url:"share_url"`
}

// FetchUserPostVideosParams pages through a user's posts.
type FetchUserPostVideosParams struct {
	SecUserID string                `url:"sec_user_id"`
	MaxCursor optional.Value[int64] `url:"max_cursor"`
	Count     optional.Value[int]   `url:"count"`
}

// FetchMultiVideoParams asks for several posts in one call. The ids are sent
// as a single comma separated value.
type FetchMultiVideoParams struct {
	AwemeIDs []string
}

// QueryValues implements client.QueryEncoder.
func (p FetchMultiVideoParams) QueryValues() (url.Values, error) {
	return url.Values{"aweme_ids": {strings.Join(p.AwemeIDs, ",")}}, nil
}

var (
	FetchOneVideo           = client.Get[FetchOneVideoParams, models.ResponseModel]("/api/v1/douyin/app/v3/fetch_one_video")
	FetchOneVideoByShareURL = client.Get[FetchOneVideoByShareURLParams, models.ResponseModel]("/api/v1/douyin/app/v3/fetch_one_video_by_share_url")
	FetchUserPostVideos     = client.Get[FetchUserPostVideosParams, models.ResponseModel]("/api/v1/douyin/app/v3/fetch_user_post_videos")
	FetchMultiVideo         = client.Get[FetchMultiVideoParams, models.ResponseModel]("/api/v1/douyin/app/v3/fetch_multi_video")
)
