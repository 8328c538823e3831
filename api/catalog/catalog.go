// Package catalog lists every endpoint declared in the api packages so tools
// can look them up by name or path.
package catalog

import (
	"slices"
	"strings"

	"github.com/s0up4200/tikhub/api/bilibili"
	dyappv3 "github.com/s0up4200/tikhub/api/douyin/appv3"
	"github.com/s0up4200/tikhub/api/douyin/search"
	dyweb "github.com/s0up4200/tikhub/api/douyin/web"
	"github.com/s0up4200/tikhub/api/health"
	"github.com/s0up4200/tikhub/api/hybrid"
	"github.com/s0up4200/tikhub/api/instagram"
	"github.com/s0up4200/tikhub/api/kuaishou"
	"github.com/s0up4200/tikhub/api/tikhub"
	ttappv3 "github.com/s0up4200/tikhub/api/tiktok/appv3"
	ttweb "github.com/s0up4200/tikhub/api/tiktok/web"
	"github.com/s0up4200/tikhub/api/twitter"
	"github.com/s0up4200/tikhub/api/weibo"
	"github.com/s0up4200/tikhub/api/xiaohongshu"
	"github.com/s0up4200/tikhub/api/youtube"
)

// Descriptor names one endpoint.
type Descriptor struct {
	Name   string
	Method string
	Path   string
}

// route is satisfied by every client.Endpoint.
type route interface {
	Method() string
	Path() string
}

func describe(name string, r route) Descriptor {
	return Descriptor{Name: name, Method: r.Method(), Path: r.Path()}
}

var descriptors = []Descriptor{
	describe("hybrid.video_data", hybrid.VideoData),

	describe("tiktok.app.fetch_one_video", ttappv3.FetchOneVideo),
	describe("tiktok.app.fetch_one_video_by_share_url", ttappv3.FetchOneVideoByShareURL),
	describe("tiktok.app.fetch_user_post_videos", ttappv3.FetchUserPostVideos),
	describe("tiktok.app.fetch_user_profile", ttappv3.FetchUserProfile),
	describe("tiktok.app.fetch_video_comments", ttappv3.FetchVideoComments),
	describe("tiktok.app.fetch_general_search_result", ttappv3.FetchGeneralSearchResult),
	describe("tiktok.app.fetch_multi_video", ttappv3.FetchMultiVideo),

	describe("tiktok.web.fetch_post_detail", ttweb.FetchPostDetail),
	describe("tiktok.web.fetch_user_profile", ttweb.FetchUserProfile),
	describe("tiktok.web.fetch_user_post", ttweb.FetchUserPost),
	describe("tiktok.web.get_sec_user_id", ttweb.GetSecUserID),
	describe("tiktok.web.get_aweme_id", ttweb.GetAwemeID),

	describe("douyin.web.fetch_one_video", dyweb.FetchOneVideo),
	describe("douyin.web.fetch_user_post_videos", dyweb.FetchUserPostVideos),
	describe("douyin.web.handler_user_profile", dyweb.HandlerUserProfile),
	describe("douyin.web.fetch_video_comments", dyweb.FetchVideoComments),
	describe("douyin.web.fetch_hot_search_result", dyweb.FetchHotSearch),

	describe("douyin.app.fetch_one_video", dyappv3.FetchOneVideo),
	describe("douyin.app.fetch_one_video_by_share_url", dyappv3.FetchOneVideoByShareURL),
	describe("douyin.app.fetch_user_post_videos", dyappv3.FetchUserPostVideos),
	describe("douyin.app.fetch_multi_video", dyappv3.FetchMultiVideo),

	describe("douyin.search.fetch_general_search", search.FetchGeneralSearch),
	describe("douyin.search.fetch_video_search", search.FetchVideoSearch),
	describe("douyin.search.fetch_user_search", search.FetchUserSearch),

	describe("instagram.fetch_user_info_by_username", instagram.FetchUserInfoByUsername),
	describe("instagram.fetch_user_info_by_user_id", instagram.FetchUserInfoByUserID),
	describe("instagram.fetch_post_info_by_url", instagram.FetchPostInfoByURL),
	describe("instagram.fetch_user_posts_by_user_id", instagram.FetchUserPostsByUserID),

	describe("xiaohongshu.get_note_info", xiaohongshu.GetNoteInfo),
	describe("xiaohongshu.get_user_info", xiaohongshu.GetUserInfo),
	describe("xiaohongshu.search_notes", xiaohongshu.SearchNotes),

	describe("weibo.fetch_user_info", weibo.FetchUserInfo),
	describe("weibo.fetch_post_detail", weibo.FetchPostDetail),
	describe("weibo.fetch_user_posts", weibo.FetchUserPosts),

	describe("youtube.get_video_info", youtube.GetVideoInfo),
	describe("youtube.get_channel_info", youtube.GetChannelInfo),
	describe("youtube.search_video", youtube.SearchVideo),

	describe("twitter.fetch_tweet_detail", twitter.FetchTweetDetail),
	describe("twitter.fetch_user_profile", twitter.FetchUserProfile),
	describe("twitter.fetch_user_post_tweet", twitter.FetchUserPostTweet),
	describe("twitter.fetch_search_timeline", twitter.FetchSearchTimeline),

	describe("bilibili.fetch_one_video", bilibili.FetchOneVideo),
	describe("bilibili.fetch_user_profile", bilibili.FetchUserProfile),
	describe("bilibili.fetch_user_post_videos", bilibili.FetchUserPostVideos),
	describe("bilibili.fetch_video_comments", bilibili.FetchVideoComments),

	describe("kuaishou.fetch_one_video", kuaishou.FetchOneVideo),
	describe("kuaishou.fetch_user_info", kuaishou.FetchUserInfo),

	describe("tikhub.get_user_info", tikhub.GetUserInfo),
	describe("tikhub.get_user_daily_usage", tikhub.GetUserDailyUsage),
	describe("tikhub.calculate_price", tikhub.CalculatePrice),

	describe("health.check", health.Check),
}

// All returns every descriptor, sorted by name.
func All() []Descriptor {
	out := slices.Clone(descriptors)
	slices.SortFunc(out, func(a, b Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Lookup finds an endpoint by name or by path.
func Lookup(nameOrPath string) (Descriptor, bool) {
	i := slices.IndexFunc(descriptors, func(d Descriptor) bool {
		return d.Name == nameOrPath || d.Path == nameOrPath
	})
	if i < 0 {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

// Filter returns the descriptors whose name starts with prefix, sorted by name.
func Filter(prefix string) []Descriptor {
	var out []Descriptor
	for _, d := range All() {
		if strings.HasPrefix(d.Name, prefix) {
			out = append(out, d)
		}
	}
	return out
}
