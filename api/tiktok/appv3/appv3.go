// Package appv3 wraps the TikTok mobile app (v3) endpoints.
package appv3

import (
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
	SecUserID optional.Value[string] `url:"sec_user_id"`
	UniqueID  optional.Value[string] `url:"unique_id"`
	MaxCursor optional.Value[int64]  `url:"max_cursor"`
	Count     optional.Value[int]    `url:"count"`
	// SortType is 0 for latest first and 1 for most popular.
	SortType optional.Value[int] `url:"sort_type"`
}

// NewFetchUserPostVideosParams returns the first page of secUserID's posts.
func NewFetchUserPostVideosParams(secUserID string) FetchUserPostVideosParams {
	return FetchUserPostVideosParams{
		SecUserID: optional.Of(secUserID),
		MaxCursor: optional.Of[int64](0),
		Count:     optional.Of(20),
		SortType:  optional.Of(0),
	}
}

// FetchUserProfileParams identifies a user by id or secure id.
type FetchUserProfileParams struct {
	UserID    optional.Value[string] `url:"user_id"`
	SecUserID optional.Value[string] `url:"sec_user_id"`
}

// FetchVideoCommentsParams pages through the comments of a post.
type FetchVideoCommentsParams struct {
	AwemeID string              `url:"aweme_id"`
	Cursor  optional.Value[int] `url:"cursor"`
	Count   optional.Value[int] `url:"count"`
}

// NewFetchVideoCommentsParams returns the first page of comments on awemeID.
func NewFetchVideoCommentsParams(awemeID string) FetchVideoCommentsParams {
	return FetchVideoCommentsParams{
		AwemeID: awemeID,
		Cursor:  optional.Of(0),
		Count:   optional.Of(20),
	}
}

// FetchGeneralSearchParams is a keyword search across videos and users.
type FetchGeneralSearchParams struct {
	Keyword     string              `url:"keyword"`
	Offset      optional.Value[int] `url:"offset"`
	Count       optional.Value[int] `url:"count"`
	SortType    optional.Value[int] `url:"sort_type"`
	PublishTime optional.Value[int] `url:"publish_time"`
}

var (
	FetchOneVideo            = client.Get[FetchOneVideoParams, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_one_video")
	FetchOneVideoByShareURL  = client.Get[FetchOneVideoByShareURLParams, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_one_video_by_share_url")
	FetchUserPostVideos      = client.Get[FetchUserPostVideosParams, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_user_post_videos")
	FetchUserProfile         = client.Get[FetchUserProfileParams, models.ResponseModel]("/api/v1/tiktok/app/v3/handler_user_profile")
	FetchVideoComments       = client.Get[FetchVideoCommentsParams, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_video_comments")
	FetchGeneralSearchResult = client.Get[FetchGeneralSearchParams, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_general_search_result")
	FetchMultiVideo          = client.Post[models.TikTokVideoBatchRequest, models.ResponseModel]("/api/v1/tiktok/app/v3/fetch_multi_video")
)
