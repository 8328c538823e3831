// Package web wraps the TikTok web endpoints. Parameter names follow the
// camelCase used by the TikTok web API.
package web

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// FetchPostDetailParams identifies a post.
type FetchPostDetailParams struct {
	ItemID string `url:"itemId"`
}

// FetchUserProfileParams identifies a user by handle or secure id.
type FetchUserProfileParams struct {
	UniqueID optional.Value[string] `url:"uniqueId"`
	SecUID   optional.Value[string] `url:"secUid"`
}

// FetchUserPostParams pages through a user's posts.
type FetchUserPostParams struct {
	SecUID      string              `url:"secUid"`
	Cursor      optional.Value[int] `url:"cursor"`
	Count       optional.Value[int] `url:"count"`
	CoverFormat optional.Value[int] `url:"coverFormat"`
}

// NewFetchUserPostParams returns the first page of secUID's posts.
func NewFetchUserPostParams(secUID string) FetchUserPostParams {
	return FetchUserPostParams{
		SecUID:      secUID,
		Cursor:      optional.Of(0),
		Count:       optional.Of(35),
		CoverFormat: optional.Of(2),
	}
}

// URLParams carries a profile or post URL.
type URLParams struct {
	URL string `url:"url"`
}

var (
	FetchPostDetail  = client.Get[FetchPostDetailParams, models.ResponseModel]("/api/v1/tiktok/web/fetch_post_detail")
	FetchUserProfile = client.Get[FetchUserProfileParams, models.ResponseModel]("/api/v1/tiktok/web/fetch_user_profile")
	FetchUserPost    = client.Get[FetchUserPostParams, models.ResponseModel]("/api/v1/tiktok/web/fetch_user_post")
	// GetSecUserID resolves a profile URL to its secure user id.
	GetSecUserID = client.Get[URLParams, models.ResponseModel]("/api/v1/tiktok/web/get_sec_user_id")
	// GetAwemeID resolves a post URL to its aweme id.
	GetAwemeID = client.Get[URLParams, models.ResponseModel]("/api/v1/tiktok/web/get_aweme_id")
)
