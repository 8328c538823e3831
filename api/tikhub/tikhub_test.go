package tikhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.NewAuthenticatedClient(server.URL, "test-token", zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestFetchUserInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tikhub/user/get_user_info", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.RawQuery)

		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": {
				"api_key_data": {
					"api_key_name": "default",
					"api_key_status": "active",
					"api_key_scopes": ["/api/v1/tiktok/"],
					"created_at": "2024-03-01T10:00:00",
					"expires_at": null
				},
				"user_data": {"email": "dev@example.com", "balance": 3.5}
			}
		}`))
	})

	info, err := FetchUserInfo(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "default", info.APIKey.Name)
	assert.Equal(t, models.APIKeyStatusActive, info.APIKey.Status)
	assert.True(t, info.APIKey.ExpiresAt.IsNull())
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), info.APIKey.CreatedAt)
	assert.Equal(t, "dev@example.com", info.User["email"])
}

func TestFetchDailyUsage(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantQuery string
	}{
		{name: "today", date: "", wantQuery: ""},
		{name: "specific day", date: "2024-05-01", wantQuery: "date=2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(`{"code":200,"data":{"date":"2024-05-01","request_count":3,"paid_request_count":1,"free_request_count":2}}`))
			})

			usage, err := FetchDailyUsage(context.Background(), c, tt.date)
			require.NoError(t, err)
			assert.Equal(t, 3, usage.RequestCount)
			assert.True(t, usage.Cost.IsUnset())
		})
	}
}

func TestFetchPriceValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "endpoint=%2Fapi%2Fv1%2Fnope&request_per_day=10", r.URL.RawQuery)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["query","endpoint"],"msg":"unknown endpoint","type":"value_error"}]}`))
	})

	_, err := FetchPrice(context.Background(), c, "/api/v1/nope", 10)
	var validation *models.HTTPValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "query.endpoint: unknown endpoint")
}

func TestFetchUserInfoUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid token"}`))
	})

	_, err := FetchUserInfo(context.Background(), c)
	assert.ErrorIs(t, err, client.ErrNoResult)
}
