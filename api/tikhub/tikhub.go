// Package tikhub wraps the account endpoints of the TikHub service itself:
// key information, daily usage and price calculation.
package tikhub

import (
	"context"
	"fmt"

	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/s0up4200/tikhub/optional"
)

// DailyUsageParams selects the day to report. The server uses today when
// Date is unset.
type DailyUsageParams struct {
	Date optional.Value[string] `url:"date"`
}

// CalculatePriceParams estimates the cost of calling an endpoint.
type CalculatePriceParams struct {
	Endpoint      string              `url:"endpoint"`
	RequestPerDay optional.Value[int] `url:"request_per_day"`
}

var (
	GetUserInfo       = client.Get[struct{}, models.ResponseModel]("/api/v1/tikhub/user/get_user_info")
	GetUserDailyUsage = client.Get[DailyUsageParams, models.ResponseModel]("/api/v1/tikhub/user/get_user_daily_usage")
	CalculatePrice    = client.Get[CalculatePriceParams, models.ResponseModel]("/api/v1/tikhub/user/calculate_price")
)

// UserInfo is the data payload of GetUserInfo.
type UserInfo struct {
	APIKey models.APIKeyInfo `json:"api_key_data"`
	User   map[string]any    `json:"user_data"`
}

// Price is the data payload of CalculatePrice.
type Price struct {
	Endpoint      string  `json:"endpoint"`
	RequestPerDay int     `json:"request_per_day"`
	TotalCost     float64 `json:"total_cost"`
}

// FetchUserInfo returns the key and user data for the client's token.
func FetchUserInfo(ctx context.Context, c *client.Client) (*UserInfo, error) {
	res, err := GetUserInfo.Do(ctx, c, struct{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	return client.DecodeData[UserInfo](res)
}

// FetchDailyUsage returns the usage for date, or today when date is empty.
func FetchDailyUsage(ctx context.Context, c *client.Client, date string) (*models.DailyUsage, error) {
	var p DailyUsageParams
	if date != "" {
		p.Date = optional.Of(date)
	}

	res, err := GetUserDailyUsage.Do(ctx, c, p)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}
	return client.DecodeData[models.DailyUsage](res)
}

// FetchPrice estimates the daily cost of calling endpoint requestsPerDay times.
func FetchPrice(ctx context.Context, c *client.Client, endpoint string, requestsPerDay int) (*Price, error) {
	p := CalculatePriceParams{Endpoint: endpoint, RequestPerDay: optional.Of(requestsPerDay)}

	res, err := CalculatePrice.Do(ctx, c, p)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate price: %w", err)
	}
	return client.DecodeData[Price](res)
}
