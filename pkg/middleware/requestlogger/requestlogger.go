package requestlogger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type Config struct {
	WithRequestHeader    bool     `mapstructure:"request_header"`
	WithRequestQuery     bool     `mapstructure:"request_query"`
	Disable              bool     `mapstructure:"disable"` // only failed requests are logged
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`
}

// New logs every completed request, at error level when it failed.
func New(config Config) fiber.Handler {
	hidden := lo.Associate(config.HiddenRequestHeaders, func(header string) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(header)), struct{}{}
	})

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()

		failed := err != nil || status >= http.StatusInternalServerError
		if config.Disable && !failed {
			return errors.WithStack(err)
		}

		request := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("requestId", requestcontext.GetRequestId(c.UserContext())),
			slog.String("remoteIP", c.IP()),
		}
		if config.WithRequestQuery {
			request = append(request, slog.String("query", string(c.Request().URI().QueryString())))
		}
		if config.WithRequestHeader {
			headers := lo.OmitBy(c.GetReqHeaders(), func(key string, _ []string) bool {
				_, ok := hidden[strings.ToLower(key)]
				return ok
			})
			request = append(request, slog.Any("header", headers))
		}

		attrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Group("request", request...),
			slog.Group("response",
				slog.Int("status", status),
				slog.Int("length", len(c.Response().Body())),
			),
			slog.Duration("latency", latency),
		}

		level := slog.LevelInfo
		if failed {
			level = slog.LevelError
			attrs = append(attrs, slog.Any("error", lo.Ternary[error](err != nil, err, fiber.NewError(status))))
		}
		logger.LogAttrs(c.UserContext(), level, "Request Completed", attrs...)

		return errors.WithStack(err)
	}
}
