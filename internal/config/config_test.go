package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
logger:
  output: json
indexer:
  base_url: https://api.ghostnet.tzkt.io/v1/blocks
formatter:
  locale: en-GB
  timezone: Asia/Bangkok
watch:
  interval: 1s
`), 0o600))
	t.Setenv("HTTP_SERVER_PORT", "9090")

	conf := Parse(configFile)
	assert.Equal(t, "json", conf.Logger.Output)
	assert.Equal(t, "https://api.ghostnet.tzkt.io/v1/blocks", conf.Indexer.BaseURL)
	assert.Equal(t, "en-GB", conf.Formatter.Locale)
	assert.Equal(t, "Asia/Bangkok", conf.Formatter.Timezone)
	assert.Equal(t, 9090, conf.HTTPServer.Port)
	assert.Equal(t, time.Second, conf.Watch.Interval)

	// defaults are kept for keys missing from the file
	assert.Equal(t, 5*time.Second, conf.Watch.Throttle)
	assert.Equal(t, 10, conf.Watch.Limit)

	assert.Equal(t, conf, Load())
}
