package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prev := output
	output = buf
	t.Cleanup(func() {
		output = prev
		_ = Init(Config{})
	})
	require.NoError(t, Init(cfg))
	return buf
}

func TestInit(t *testing.T) {
	t.Run("unsupported_output", func(t *testing.T) {
		captureOutput(t, Config{})
		assert.Error(t, Init(Config{Output: "xml"}))
	})
	t.Run("json_error_message", func(t *testing.T) {
		buf := captureOutput(t, Config{Output: "JSON"})
		ErrorContext(context.Background(), "can't get blocks", errors.New("boom"))
		assert.Contains(t, buf.String(), `"error":"boom"`)
		assert.Contains(t, buf.String(), `"msg":"can't get blocks"`)
	})
	t.Run("debug_level", func(t *testing.T) {
		buf := captureOutput(t, Config{Output: "text"})
		Debug("hidden")
		assert.Empty(t, buf.String())

		buf = captureOutput(t, Config{Output: "text", Debug: true})
		Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestContextLogger(t *testing.T) {
	buf := captureOutput(t, Config{Output: "json"})
	ctx := WithContext(context.Background(), slog.String("requestId", "abc"))
	InfoContext(ctx, "hello")
	assert.Contains(t, buf.String(), `"requestId":"abc"`)

	// loggers without context attributes don't inherit them
	buf.Reset()
	InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "requestId")
}

func TestLevelAttrReplacer(t *testing.T) {
	attr := levelAttrReplacer(nil, slog.Any(slog.LevelKey, LevelFatal))
	assert.Equal(t, "FATAL", attr.Value.String())
	attr = levelAttrReplacer(nil, slog.Any(slog.LevelKey, LevelCritical+1))
	assert.Equal(t, "CRITICAL+1", attr.Value.String())
	attr = levelAttrReplacer(nil, slog.Any(slog.LevelKey, slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, attr.Value.Any())
}

func TestDebugErrorDetails(t *testing.T) {
	buf := captureOutput(t, Config{Output: "json", Debug: true})
	ctx := WithContext(context.Background(), slog.String("requestId", "abc"))
	ErrorContext(ctx, "can't get blocks", errors.Wrap(errors.New("boom"), "fetch"))

	assert.Contains(t, buf.String(), `"error":"fetch: boom"`)
	assert.Contains(t, buf.String(), `"requestId":"abc"`)
	assert.Contains(t, buf.String(), `"error_verbose":"fetch: boom`)
	// source points at the caller, not at the logger package
	assert.Contains(t, buf.String(), "logger_test.go")

	buf.Reset()
	InfoContext(ctx, "no error")
	assert.NotContains(t, buf.String(), "error_verbose")
}
