// Package weibo wraps the Weibo web endpoints.
package weibo

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// UserInfoParams identifies a user.
type UserInfoParams struct {
	UID string `url:"uid"`
}

// PostDetailParams identifies a post.
type PostDetailParams struct {
	ID string `url:"id"`
}

// UserPostsParams pages through a user's posts.
type UserPostsParams struct {
	UID     string                 `url:"uid"`
	Page    optional.Value[int]    `url:"page"`
	Feature optional.Value[int]    `url:"feature"`
	SinceID optional.Value[string] `url:"since_id"`
}

var (
	FetchUserInfo   = client.Get[UserInfoParams, models.ResponseModel]("/api/v1/weibo/web/fetch_user_info")
	FetchPostDetail = client.Get[PostDetailParams, models.ResponseModel]("/api/v1/weibo/web/fetch_post_detail")
	FetchUserPosts  = client.Get[UserPostsParams, models.ResponseModel]("/api/v1/weibo/web/fetch_user_posts")
)
