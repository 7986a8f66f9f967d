package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/internal/api/httphandler"
	"github.com/gaze-network/blocks-explorer/internal/config"
	"github.com/gaze-network/blocks-explorer/internal/tzkt"
	"github.com/gaze-network/blocks-explorer/pkg/automaxprocs"
	"github.com/gaze-network/blocks-explorer/pkg/errorhandler"
	"github.com/gaze-network/blocks-explorer/pkg/formatter"
	"github.com/gaze-network/blocks-explorer/pkg/logger"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
	"github.com/gaze-network/blocks-explorer/pkg/middleware/requestcontext"
	"github.com/gaze-network/blocks-explorer/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	// Create command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start blocks-explorer API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return serveHandler(cmd, args)
		},
	}

	// Add local flags
	flags := serveCmd.Flags()
	flags.Int("port", 8080, "HTTP server port")

	// Bind flags to configuration
	config.BindPFlag("http_server.port", flags.Lookup("port"))

	return serveCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

// Services provides the indexer client and formatter from configuration.
var Services = do.Package(
	do.Lazy(func(i do.Injector) (*tzkt.Client, error) {
		conf := do.MustInvoke[config.Config](i)
		client, err := tzkt.New(conf.Indexer)
		if err != nil {
			return nil, errors.Wrap(err, "invalid indexer configuration")
		}
		return client, nil
	}),
	do.Lazy(func(i do.Injector) (*formatter.Formatter, error) {
		conf := do.MustInvoke[config.Config](i)
		f, err := formatter.New(conf.Formatter)
		if err != nil {
			return nil, errors.Wrap(err, "invalid formatter configuration")
		}
		return f, nil
	}),
)

func newHTTPServer(i do.Injector) (*fiber.App, error) {
	conf := do.MustInvoke[config.Config](i)

	app := fiber.New(fiber.Config{
		AppName:               "Blocks Explorer",
		ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
		DisableStartupMessage: true,
	})
	app.
		Use(favicon.New()).
		Use(cors.New()).
		Use(requestid.New()).
		Use(requestcontext.New(
			requestcontext.WithRequestId(),
		)).
		Use(requestlogger.New(conf.HTTPServer.Logger)).
		Use(fiberrecover.New(fiberrecover.Config{
			EnableStackTrace: true,
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				buf := make([]byte, 1024) // bufLen = 1024
				buf = buf[:runtime.Stack(buf, false)]
				logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e), slog.String("stacktrace", string(buf)))
			},
		})).
		Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})

	blocksClient, err := do.Invoke[*tzkt.Client](i)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	blocksFormatter, err := do.Invoke[*formatter.Formatter](i)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := httphandler.New(blocksClient, blocksFormatter).Mount(app); err != nil {
		return nil, errors.Wrap(err, "can't mount blocks api")
	}

	return app, nil
}

func serveHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New(Services)
	do.ProvideValue(injector, conf)
	do.Provide(injector, newHTTPServer)

	// Run API server
	httpServer, err := do.Invoke[*fiber.App](injector)
	if err != nil {
		return errors.Wrap(err, "can't init http server")
	}
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port), slog.String("indexer", conf.Indexer.BaseURL))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	// fiber.App is shut down by the injector
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	logger.InfoContext(ctx, "Blocks explorer stopped")
	return nil
}
