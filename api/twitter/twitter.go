// Package twitter wraps the Twitter/X web endpoints.
package twitter

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// TweetDetailParams identifies a tweet.
type TweetDetailParams struct {
	TweetID string `url:"tweet_id"`
}

// UserProfileParams identifies a user by screen name or rest id.
type UserProfileParams struct {
	ScreenName optional.Value[string] `url:"screen_name"`
	RestID     optional.Value[string] `url:"rest_id"`
}

// UserPostTweetParams pages through a user's tweets.
type UserPostTweetParams struct {
	ScreenName optional.Value[string] `url:"screen_name"`
	RestID     optional.Value[string] `url:"rest_id"`
	Cursor     optional.Value[string] `url:"cursor"`
}

// SearchTimelineParams is a keyword search.
type SearchTimelineParams struct {
	Keyword string `url:"keyword"`
	// SearchType is one of Top, Latest, Media, People or Lists.
	SearchType optional.Value[string] `url:"search_type"`
	Cursor     optional.Value[string] `url:"cursor"`
}

var (
	FetchTweetDetail    = client.Get[TweetDetailParams, models.ResponseModel]("/api/v1/twitter/web/fetch_tweet_detail")
	FetchUserProfile    = client.Get[UserProfileParams, models.ResponseModel]("/api/v1/twitter/web/fetch_user_profile")
	FetchUserPostTweet  = client.Get[UserPostTweetParams, models.ResponseModel]("/api/v1/twitter/web/fetch_user_post_tweet")
	FetchSearchTimeline = client.Get[SearchTimelineParams, models.ResponseModel]("/api/v1/twitter/web/fetch_search_timeline")
)
