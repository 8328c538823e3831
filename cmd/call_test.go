package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tikhub/client"
	"github.com/s0up4200/tikhub/config"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"aweme_id=123", "region=US", "cursor=", "q=a=b"})
	require.NoError(t, err)
	assert.Equal(t, client.Values{
		"aweme_id": "123",
		"region":   "US",
		"cursor":   "",
		"q":        "a=b",
	}, params)

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=x"})
	assert.Error(t, err)
}

func TestParseEach(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		key     string
		values  []string
		wantErr bool
	}{
		{name: "list", arg: "aweme_id=1,2,3", key: "aweme_id", values: []string{"1", "2", "3"}},
		{name: "whitespace and blanks", arg: "id= a , ,b", key: "id", values: []string{"a", "b"}},
		{name: "no separator", arg: "aweme_id", wantErr: true},
		{name: "empty list", arg: "id=", wantErr: true},
		{name: "only commas", arg: "id=,,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, values, err := parseEach(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestCheckEach(t *testing.T) {
	assert.NoError(t, checkEach("", ""))
	assert.NoError(t, checkEach("aweme_id=1,2", ""))
	assert.NoError(t, checkEach("", `{"keyword":"cat"}`))
	assert.Error(t, checkEach("aweme_id=1,2", `{"keyword":"cat"}`))
}

func TestResolveTarget(t *testing.T) {
	target, err := resolveTarget("tiktok.app.fetch_one_video", false)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, target.method)
	assert.Equal(t, "/api/v1/tiktok/app/v3/fetch_one_video", target.path)

	target, err = resolveTarget("douyin.search.fetch_general_search", false)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, target.method)

	target, err = resolveTarget("/api/v1/custom/thing", false)
	require.NoError(t, err)
	assert.Equal(t, callTarget{method: http.MethodGet, path: "/api/v1/custom/thing"}, target)

	target, err = resolveTarget("/api/v1/custom/thing", true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, target.method)

	_, err = resolveTarget("nope.nothing", false)
	assert.Error(t, err)
}

func TestReadBody(t *testing.T) {
	body, err := readBody("")
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = readBody(`{"keyword":"cat"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keyword":"cat"}`, string(body))

	_, err = readBody(`{"keyword":`)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"aweme_ids":["1","2"]}`), 0o644))
	body, err = readBody("@" + path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"aweme_ids":["1","2"]}`, string(body))

	_, err = readBody("@" + filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSelectExpression(t *testing.T) {
	cfg = &config.Config{Queries: config.QueryConfig{"likes": "data.statistics.digg_count"}}
	t.Cleanup(func() {
		cfg = nil
		callExpr, callQuery = "", ""
	})

	callExpr = "code"
	expression, err := selectExpression()
	require.NoError(t, err)
	assert.Equal(t, "code", expression)

	callExpr, callQuery = "", "likes"
	expression, err = selectExpression()
	require.NoError(t, err)
	assert.Equal(t, "data.statistics.digg_count", expression)

	callQuery = "Likes"
	expression, err = selectExpression()
	require.NoError(t, err)
	assert.Equal(t, "data.statistics.digg_count", expression)

	callQuery = "unknown"
	_, err = selectExpression()
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	setupLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "WARN", Format: "console"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "bogus"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
