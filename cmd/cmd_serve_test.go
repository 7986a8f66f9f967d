package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/blocks-explorer/internal/config"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gaze-network/blocks-explorer/pkg/formatter"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServer(t *testing.T) {
	server, _ := newFakeIndexer(t)

	injector := do.New(Services)
	do.ProvideValue(injector, config.Config{
		Indexer: tzkt.Config{BaseURL: server.URL + "/v1/blocks"},
	})
	app, err := newHTTPServer(injector)
	require.NoError(t, err)

	t.Run("health_check", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
	t.Run("blocks", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/blocks?select=level,timestamp,proposer", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

		var body struct {
			Result struct {
				Count  uint64 `json:"count"`
				Blocks []struct {
					TimestampText string `json:"timestampText"`
					ProposerText  string `json:"proposerText"`
				} `json:"blocks"`
			} `json:"result"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, uint64(3735928), body.Result.Count)
		require.Len(t, body.Result.Blocks, 2)
		assert.Equal(t, "Jan 15, 2023, 10:30 AM", body.Result.Blocks[0].TimestampText)
		assert.Equal(t, "tz1def", body.Result.Blocks[1].ProposerText)
	})
	t.Run("invalid_formatter_config", func(t *testing.T) {
		injector := do.New(Services)
		do.ProvideValue(injector, config.Config{Formatter: formatter.Config{Locale: "fr-FR"}})
		_, err := newHTTPServer(injector)
		assert.Error(t, err)
	})
}
