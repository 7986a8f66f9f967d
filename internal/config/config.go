package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gaze-network/blocks-explorer/pkg/formatter"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
	"github.com/gaze-network/blocks-explorer/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Indexer: tzkt.Config{
			BaseURL: tzkt.DefaultBaseURL,
		},
		Formatter: formatter.Config{
			Locale:   formatter.DefaultLocale,
			Timezone: formatter.DefaultTimezone,
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
		Watch: WatchConfig{
			Interval: 2 * time.Second,
			Throttle: 5 * time.Second,
			Limit:    10,
		},
	}
)

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	Indexer    tzkt.Config      `mapstructure:"indexer"`
	Formatter  formatter.Config `mapstructure:"formatter"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Watch      WatchConfig      `mapstructure:"watch"`
}

type HTTPServerConfig struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

type WatchConfig struct {
	// Interval between blocks count polls.
	Interval time.Duration `mapstructure:"interval"`

	// Throttle is the minimum delay before the latest blocks are rendered again.
	Throttle time.Duration `mapstructure:"throttle"`

	// Limit is the number of latest blocks to render.
	Limit int `mapstructure:"limit"`
}

func init() {
	// register keys so environment variables can override them without a config file
	viper.SetDefault("logger.output", config.Logger.Output)
	viper.SetDefault("logger.debug", config.Logger.Debug)
	viper.SetDefault("indexer.base_url", config.Indexer.BaseURL)
	viper.SetDefault("indexer.debug", config.Indexer.Debug)
	viper.SetDefault("formatter.locale", config.Formatter.Locale)
	viper.SetDefault("formatter.timezone", config.Formatter.Timezone)
	viper.SetDefault("http_server.port", config.HTTPServer.Port)
	viper.SetDefault("watch.interval", config.Watch.Interval)
	viper.SetDefault("watch.throttle", config.Watch.Throttle)
	viper.SetDefault("watch.limit", config.Watch.Limit)
}

// Parse parse the configuration from environment variables and the config file.
// If configFile is empty, `./config.yaml` is used when present.
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration, parsing it first if needed.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}
