// Package health wraps the service health check, which needs no token.
package health

import (
	"context"
	"fmt"

	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
)

// Check is the health check endpoint. It takes no parameters.
var Check = client.Get[struct{}, models.ResponseModel]("/api/v1/health/check")

// Status is the data payload of Check.
type Status struct {
	Status string `json:"status"`
}

// Healthy reports whether the service answered the health check with a 200.
func Healthy(ctx context.Context, c *client.Client) (bool, error) {
	resp, err := Check.Detailed(ctx, c, struct{}{})
	if err != nil {
		return false, fmt.Errorf("health check: %w", err)
	}
	return resp.Parsed != nil && resp.Parsed.OK != nil, nil
}
