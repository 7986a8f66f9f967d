package formatter

import (
	"testing"
	"time"

	"github.com/gaze-network/blocks-explorer/common/errs"
	"github.com/gaze-network/blocks-explorer/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	testcases := []struct {
		input    string
		expected string
	}{
		{"2023-01-15T10:30:00Z", "Jan 15, 2023, 10:30 AM"},
		{"2023-01-15T22:05:59.123Z", "Jan 15, 2023, 10:05 PM"},
		{"2023-01-15T10:30:00+07:00", "Jan 15, 2023, 3:30 AM"},
		{"2023-01-15T10:30:00", "Jan 15, 2023, 10:30 AM"},
		{"2023-01-15", "Jan 15, 2023, 12:00 AM"},
		{"2023-01-15T10:30Z", "Jan 15, 2023, 10:30 AM"},
		{"2023-01-15T10:30+07:00", "Jan 15, 2023, 3:30 AM"},
		{"2023-01-15T10:30+0700", "Jan 15, 2023, 3:30 AM"},
		{"2023-01-15T10:30:00+0700", "Jan 15, 2023, 3:30 AM"},
		{"2023-01-15T10:30:00.000-0130", "Jan 15, 2023, 12:00 PM"},
		{"2023-01-15T10:30:00z", "Jan 15, 2023, 10:30 AM"},
		{"2023-01-15T10:30:00.000Z", "Jan 15, 2023, 10:30 AM"},
	}
	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := FormatTimestamp(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, input := range []string{"", "yesterday", "2023-13-45T10:30:00Z"} {
			_, err := FormatTimestamp(input)
			assert.ErrorIs(t, err, errs.FormatError, input)
		}
	})
}

func TestFormatterLocales(t *testing.T) {
	testcases := []struct {
		config   Config
		expected string
	}{
		{Config{Locale: "en-US"}, "Jan 15, 2023, 10:30 AM"},
		{Config{Locale: "en-GB"}, "15 Jan 2023, 10:30"},
		{Config{Locale: "en-AU"}, "15 Jan 2023, 10:30 am"},
		{Config{Locale: "en-GB", Timezone: "Asia/Bangkok"}, "15 Jan 2023, 17:30"},
	}
	for _, tc := range testcases {
		t.Run(tc.config.Locale+"/"+tc.config.Timezone, func(t *testing.T) {
			f, err := New(tc.config)
			require.NoError(t, err)

			actual, err := f.FormatTimestamp("2023-01-15T10:30:00Z")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	t.Run("unsupported_locale", func(t *testing.T) {
		_, err := New(Config{Locale: "de-DE"})
		assert.ErrorIs(t, err, errs.Unsupported)
	})
	t.Run("invalid_locale", func(t *testing.T) {
		_, err := New(Config{Locale: "!!"})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("invalid_timezone", func(t *testing.T) {
		_, err := New(Config{Timezone: "Mars/Olympus_Mons"})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestFormatTime(t *testing.T) {
	f, err := New(Config{Locale: "en-GB"})
	require.NoError(t, err)
	assert.Equal(t, "1 Mar 2024, 00:00", f.FormatTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatProposer(t *testing.T) {
	assert.Equal(t, "", FormatProposer(nil))
	assert.Equal(t, "Baker1", FormatProposer(&types.Proposer{Alias: "Baker1", Address: "tz1abc"}))
	assert.Equal(t, "tz1abc", FormatProposer(&types.Proposer{Alias: "", Address: "tz1abc"}))
	assert.Equal(t, "", FormatProposer(&types.Proposer{}))
}
