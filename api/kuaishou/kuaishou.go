// Package kuaishou wraps the Kuaishou web endpoints.
package kuaishou

import (
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
)

type OneVideoParams struct {
	ShareText string `url:"share_text"`
}

type UserInfoParams struct {
	UserID string `url:"user_id"`
}

var (
	FetchOneVideo = client.Get[OneVideoParams, models.ResponseModel]("/api/v1/kuaishou/web/fetch_one_video")
	FetchUserInfo = client.Get[UserInfoParams, models.ResponseModel]("/api/v1/kuaishou/web/fetch_user_info")
)
