package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors/errbase"
	"github.com/gaze-network/blocks-explorer/pkg/logger/slogx"
)

const (
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)

// errorStackTraceHandler adds the verbose form and the stack trace of the logged error.
type errorStackTraceHandler struct {
	slog.Handler
}

func (h errorStackTraceHandler) Handle(ctx context.Context, rec slog.Record) error {
	var err error
	rec.Attrs(func(attr slog.Attr) bool {
		if attr.Key == slogx.ErrorKey {
			err, _ = attr.Value.Any().(error)
		}
		return err == nil
	})
	if err != nil {
		rec = rec.Clone()
		rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
		if st, ok := err.(errbase.StackTraceProvider); ok {
			rec.AddAttrs(slog.Any(ErrorStackTraceKey, traceLines(st.StackTrace())))
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h errorStackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return errorStackTraceHandler{h.Handler.WithAttrs(attrs)}
}

func (h errorStackTraceHandler) WithGroup(name string) slog.Handler {
	return errorStackTraceHandler{h.Handler.WithGroup(name)}
}

// traceLines renders frames outermost first, without the trailing runtime frames.
func traceLines(frames errbase.StackTrace) []string {
	lines := make([]string, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		pc := uintptr(frames[i]) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			lines = append(lines, "unknown")
			continue
		}
		if len(lines) == 0 && strings.HasPrefix(fn.Name(), "runtime.") {
			continue
		}
		file, line := fn.FileLine(pc)
		lines = append(lines, fmt.Sprintf("%s %s:%d", fn.Name(), file, line))
	}
	return lines
}

// errorAttrReplacer logs errors by their message. The verbose form is added in debug mode only.
func errorAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slogx.ErrorKey || attr.Value.Kind() != slog.KindAny {
		return attr
	}
	if err, ok := attr.Value.Any().(error); ok && err != nil {
		return slog.String(slogx.ErrorKey, err.Error())
	}
	return attr
}
