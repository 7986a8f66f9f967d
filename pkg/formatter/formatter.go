// Package formatter renders indexer data for display.
package formatter

import (
	"time"
	_ "time/tzdata" // timezones without system zoneinfo

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/blocks-explorer/common/errs"
	"golang.org/x/text/language"
)

const (
	DefaultLocale   = "en-US"
	DefaultTimezone = "UTC"
)

type Config struct {
	// Locale is a BCP 47 language tag, E.g. `en-US` or `en-GB`.
	Locale string `mapstructure:"locale"`

	// Timezone is an IANA time zone name, E.g. `UTC` or `Asia/Bangkok`.
	Timezone string `mapstructure:"timezone"`
}

// date and time layouts per supported locale. Go only knows English month names.
var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("en-AU"),
	}
	localeLayouts = []string{
		"Jan 2, 2006, 3:04 PM",
		"2 Jan 2006, 15:04",
		"2 Jan 2006, 3:04 pm",
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

var defaultFormatter = utils.Must(New(Config{}))

// Formatter formats values with a fixed locale and time zone.
type Formatter struct {
	layout   string
	location *time.Location
}

func New(config Config) (*Formatter, error) {
	locale := utils.Default(config.Locale, DefaultLocale)
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid locale %q: %v", locale, err)
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return nil, errors.Wrapf(errs.Unsupported, "locale %q is not supported", locale)
	}

	location, err := time.LoadLocation(utils.Default(config.Timezone, DefaultTimezone))
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid timezone %q: %v", config.Timezone, err)
	}

	return &Formatter{
		layout:   localeLayouts[index],
		location: location,
	}, nil
}
