package appv3

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/s0up4200/tikhub/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMultiVideoJoinsIDs(t *testing.T) {
	c, err := client.NewClient("https://api.example.com", zerolog.Nop())
	require.NoError(t, err)

	req, err := FetchMultiVideo.NewRequest(context.Background(), c, FetchMultiVideoParams{AwemeIDs: []string{"1", "2", "3"}})
	require.NoError(t, err)
	assert.Equal(t, "aweme_ids=1%2C2%2C3", req.URL.RawQuery)
}
