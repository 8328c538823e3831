// Package web wraps the Douyin web endpoints.
package web

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// FetchOneVideoParams identifies a single post.
type FetchOneVideoParams struct {
	AwemeID string `url:"aweme_id"`
}

// FetchUserPostVideosParams pages through a user's posts.
type FetchUserPostVideosParams struct {
	SecUserID string                `url:"sec_user_id"`
	MaxCursor optional.Value[int64] `url:"max_cursor"`
	Count     optional.Value[int]   `url:"count"`
}

// NewFetchUserPostVideosParams returns the first page of secUserID's posts.
func NewFetchUserPostVideosParams(secUserID string) FetchUserPostVideosParams {
	return FetchUserPostVideosParams{
		SecUserID: secUserID,
		MaxCursor: optional.Of[int64](0),
		Count:     optional.Of(20),
	}
}

// HandlerUserProfileParams identifies a user.
type HandlerUserProfileParams struct {
	SecUserID string `url:"sec_user_id"`
}

// FetchVideoCommentsParams pages through the comments of a post.
type FetchVideoCommentsParams struct {
	AwemeID string              `url:"aweme_id"`
	Cursor  optional.Value[int] `url:"cursor"`
	Count   optional.Value[int] `url:"count"`
}

// FetchHotSearchParams optionally narrows the trending board.
type FetchHotSearchParams struct {
	BoardType    optional.Value[int]    `url:"board_type"`
	BoardSubType optional.Value[string] `url:"board_sub_type"`
}

var (
	FetchOneVideo       = client.Get[FetchOneVideoParams, models.ResponseModel]("/api/v1/douyin/web/fetch_one_video")
	FetchUserPostVideos = client.Get[FetchUserPostVideosParams, models.ResponseModel]("/api/v1/douyin/web/fetch_user_post_videos")
	HandlerUserProfile  = client.Get[HandlerUserProfileParams, models.ResponseModel]("/api/v1/douyin/web/handler_user_profile")
	FetchVideoComments  = client.Get[FetchVideoCommentsParams, models.ResponseModel]("/api/v1/douyin/web/fetch_video_comments")
	FetchHotSearch      = client.Get[FetchHotSearchParams, models.ResponseModel]("/api/v1/douyin/web/fetch_hot_search_result")
)
