// nolint: sloglint
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Config is the logger configuration.
type Config struct {
	// Output is the log format, `text` (default) or `json`.
	Output string `mapstructure:"output"`

	// Debug lowers the level to debug and adds sources and error stack traces.
	Debug bool `mapstructure:"debug"`
}

var (
	lvl = new(slog.LevelVar)

	output io.Writer = os.Stdout

	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: levelAttrReplacer,
	}))
)

func init() {
	lvl.Set(slog.LevelDebug)
	slog.SetDefault(logger)
}

// Init replaces the global logger and the slog default logger.
func Init(cfg Config) error {
	options := &slog.HandlerOptions{
		AddSource: cfg.Debug,
		Level:     lvl,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			return errorAttrReplacer(groups, levelAttrReplacer(groups, attr))
		},
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Output) {
	case "json":
		handler = slog.NewJSONHandler(output, options)
	case "text", "":
		handler = slog.NewTextHandler(output, options)
	default:
		return errors.Errorf("unsupported logger output %q", cfg.Output)
	}

	lvl.Set(slog.LevelInfo)
	if cfg.Debug {
		lvl.Set(slog.LevelDebug)
		handler = errorStackTraceHandler{handler}
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// With returns the global logger with the given attributes.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}

func Debug(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelDebug, msg, args...)
}

func Error(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelError, msg, args...)
}

// Panic logs at [LevelPanic] and then panics.
func Panic(msg string, args ...any) {
	log(context.Background(), logger, LevelPanic, msg, args...)
	panic(msg)
}

// Fatal logs at [LevelFatal] and then calls [os.Exit](1).
func Fatal(msg string, args ...any) {
	log(context.Background(), logger, LevelFatal, msg, args...)
	os.Exit(1)
}

// LogAttrs logs attrs with the logger of ctx.
func LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, FromContext(ctx), level, msg, attrs...)
}

// log and logAttrs must be called directly by an exported function so callerPC points at its caller.
func log(ctx context.Context, l *slog.Logger, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, callerPC())
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}

func logAttrs(ctx context.Context, l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, callerPC())
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}

// callerPC returns the pc of the caller of the exported logging function.
func callerPC() uintptr {
	var pcs [1]uintptr
	// skip runtime.Callers, callerPC, log or logAttrs, and the exported function
	runtime.Callers(4, pcs[:])
	return pcs[0]
}
