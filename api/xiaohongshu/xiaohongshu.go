// Package xiaohongshu wraps the Xiaohongshu (RED) web endpoints.
package xiaohongshu

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// NoteSort orders note search results.
type NoteSort string

const (
	NoteSortGeneral    NoteSort = "general"
	NoteSortPopularity NoteSort = "popularity_descending"
	NoteSortNewest     NoteSort = "time_descending"
)

// NoteInfoParams identifies a note by id or share link.
type NoteInfoParams struct {
	NoteID    optional.Value[string] `url:"note_id"`
	ShareText optional.Value[string] `url:"share_text"`
}

// UserInfoParams identifies a user.
type UserInfoParams struct {
	UserID string `url:"user_id"`
}

// SearchNotesParams is a keyword search over notes.
type SearchNotesParams struct {
	Keyword string                   `url:"keyword"`
	Page    optional.Value[int]      `url:"page"`
	Sort    optional.Value[NoteSort] `url:"sort"`
	// NoteType is 0 for all, 1 for video and 2 for image notes.
	NoteType optional.Value[int] `url:"noteType"`
}

// NewSearchNotesParams returns the first page of a general search.
func NewSearchNotesParams(keyword string) SearchNotesParams {
	return SearchNotesParams{
		Keyword:  keyword,
		Page:     optional.Of(1),
		Sort:     optional.Of(NoteSortGeneral),
		NoteType: optional.Of(0),
	}
}

var (
	GetNoteInfo = client.Get[NoteInfoParams, models.ResponseModel]("/api/v1/xiaohongshu/web/get_note_info_v4")
	GetUserInfo = client.Get[UserInfoParams, models.ResponseModel]("/api/v1/xiaohongshu/web/get_user_info")
	SearchNotes = client.Get[SearchNotesParams, models.ResponseModel]("/api/v1/xiaohongshu/web/search_notes")
)
