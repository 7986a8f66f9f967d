package formatter

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common/errs"
)

// accepted ISO-8601 layouts. Timestamps without a zone are treated as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp.
func ParseTimestamp(timestamp string) (time.Time, error) {
	timestamp = strings.TrimSpace(timestamp)
	if strings.HasSuffix(timestamp, "z") {
		timestamp = strings.TrimSuffix(timestamp, "z") + "Z"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(errs.FormatError, "can't parse timestamp %q", timestamp)
}

// FormatTimestamp renders an ISO-8601 timestamp as date and time without seconds,
// E.g. `Jan 15, 2023, 10:30 AM` for en-US.
func (f *Formatter) FormatTimestamp(timestamp string) (string, error) {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return f.FormatTime(t), nil
}

func (f *Formatter) FormatTime(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// FormatTimestamp formats with the en-US locale in UTC.
func FormatTimestamp(timestamp string) (string, error) {
	return defaultFormatter.FormatTimestamp(timestamp)
}
