// Package slogx has the attribute constructors used across the explorer.
package slogx

import "log/slog"

// ErrorKey is the attribute key used by [Error].
const ErrorKey = "error"

// Error returns an empty attribute for a nil err, so it is dropped from the record.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Uint64(key string, value uint64) slog.Attr {
	return slog.Uint64(key, value)
}
