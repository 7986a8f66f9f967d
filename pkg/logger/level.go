package logger

import (
	"fmt"
	"log/slog"
)

// Levels above slog.LevelError.
const (
	LevelCritical = slog.Level(12)
	LevelPanic    = slog.Level(14)
	LevelFatal    = slog.Level(16)
)

// highest first
var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelFatal, "FATAL"},
	{LevelPanic, "PANIC"},
	{LevelCritical, "CRITICAL"},
}

// levelAttrReplacer names the custom levels, E.g. `PANIC` or `CRITICAL+1`.
func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 || attr.Key != slog.LevelKey {
		return attr
	}
	level, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}
	for _, named := range levelNames {
		switch {
		case level == named.level:
			return slog.String(attr.Key, named.name)
		case level > named.level:
			return slog.String(attr.Key, fmt.Sprintf("%s%+d", named.name, level-named.level))
		}
	}
	return attr
}
