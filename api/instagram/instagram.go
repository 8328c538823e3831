// Package instagram wraps the Instagram web app endpoints.
package instagram

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// UsernameParams identifies a user by handle.
type UsernameParams struct {
	Username string `url:"username"`
}

// UserIDParams identifies a user by numeric id.
type UserIDParams struct {
	UserID string `url:"user_id"`
}

// PostByURLParams identifies a post or reel by its URL.
type PostByURLParams struct {
	URL string `url:"url"`
}

// UserPostsParams pages through a user's posts.
type UserPostsParams struct {
	UserID    string                 `url:"user_id"`
	Count     optional.Value[int]    `url:"count"`
	EndCursor optional.Value[string] `url:"end_cursor"`
}

var (
	FetchUserInfoByUsername = client.Get[UsernameParams, models.ResponseModel]("/api/v1/instagram/web_app/fetch_user_info_by_username")
	FetchUserInfoByUserID   = client.Get[UserIDParams, models.ResponseModel]("/api/v1/instagram/web_app/fetch_user_info_by_user_id")
	FetchPostInfoByURL      = client.Get[PostByURLParams, models.ResponseModel]("/api/v1/instagram/web_app/fetch_post_info_by_url")
	FetchUserPostsByUserID  = client.Get[UserPostsParams, models.ResponseModel]("/api/v1/instagram/web_app/fetch_user_posts_by_user_id")
)
