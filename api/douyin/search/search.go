// Package search wraps the Douyin search endpoints. Each takes a
// models.DouyinSearchRequest body; the cursor and search id of one page feed
// the request for the next.
package search

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

var (
	FetchGeneralSearch = client.Post[models.DouyinSearchRequest, models.ResponseModel]("/api/v1/douyin/search/fetch_general_search_v1")
	FetchVideoSearch   = client.Post[models.DouyinSearchRequest, models.ResponseModel]("/api/v1/douyin/search/fetch_video_search_v1")
	FetchUserSearch    = client.Post[models.DouyinSearchRequest, models.ResponseModel]("/api/v1/douyin/search/fetch_user_search")
)

// Page is the paging state returned with a search page.
type Page struct {
	Cursor   int    `json:"cursor"`
	HasMore  int    `json:"has_more"`
	SearchID string `json:"search_id"`
}

// NextRequest returns req advanced to the page after p, or false when there
// are no more results.
func NextRequest(req models.DouyinSearchRequest, p Page) (models.DouyinSearchRequest, bool) {
	if p.HasMore == 0 {
		return req, false
	}
	next := req
	next.Cursor = optional.Of(p.Cursor)
	if p.SearchID != "" {
		next.SearchID = optional.Of(p.SearchID)
	}
	return next, true
}

// PageOf reads the paging state out of a search response.
func PageOf(resp *models.ResponseModel) (Page, error) {
	var p Page
	if err := resp.DecodeData(&p); err != nil {
		return Page{}, err
	}
	return p, nil
}
