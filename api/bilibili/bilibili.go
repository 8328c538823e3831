// Package bilibili wraps the Bilibili web endpoints.
package bilibili

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

type OneVideoParams struct {
	BvID string `url:"bv_id"`
}

type UserProfileParams struct {
	UID string `url:"uid"`
}

type UserPostVideosParams struct {
	UID   string                 `url:"uid"`
	Pn    optional.Value[int]    `url:"pn"`
	Order optional.Value[string] `url:"order"`
}

type VideoCommentsParams struct {
	BvID string              `url:"bv_id"`
	Pn   optional.Value[int] `url:"pn"`
}

var (
	FetchOneVideo       = client.Get[OneVideoParams, models.ResponseModel]("/api/v1/bilibili/web/fetch_one_video")
	FetchUserProfile    = client.Get[UserProfileParams, models.ResponseModel]("/api/v1/bilibili/web/fetch_user_profile")
	FetchUserPostVideos = client.Get[UserPostVideosParams, models.ResponseModel]("/api/v1/bilibili/web/fetch_user_post_videos")
	FetchVideoComments  = client.Get[VideoCommentsParams, models.ResponseModel]("/api/v1/bilibili/web/fetch_video_comments")
)
