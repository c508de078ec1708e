// Package timestamp normalises the post timestamps returned by discovery sources.
package timestamp

import (
	"regexp"
	"time"
)

const (
	dateTimeLayout = "2006-01-02T15:04:05"
	dateLayout     = "2006-01-02"
)

// ReferenceOffset is applied to date-only values and to date-times without a zone.
const ReferenceOffset = 8 * 60 * 60

// Reference is the fixed +08:00 zone.
var Reference = time.FixedZone("UTC+08:00", ReferenceOffset)

var (
	// DateTimePrefix is the shape check shared with the post validator.
	DateTimePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

	dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// prefix, fraction, zone
	dateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2}|[+-]\d{4})?$`)
)

// HasDateTimePrefix reports whether s starts with YYYY-MM-DDTHH:MM:SS.
func HasDateTimePrefix(s string) bool {
	return DateTimePrefix.MatchString(s)
}

// Parse converts s into a time. The second result is false when s is not a
// recognised format or names an impossible calendar value.
func Parse(s string) (time.Time, bool) {
	if HasDateTimePrefix(s) {
		return parseDateTime(s)
	}

	if dateOnly.MatchString(s) {
		t, err := time.ParseInLocation(dateLayout, s, Reference)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

func parseDateTime(s string) (time.Time, bool) {
	m := dateTime.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	// time.Parse accepts a fractional second after the seconds field without it being in the layout.
	zone := m[3]
	var (
		t   time.Time
		err error
	)
	switch {
	case zone == "":
		t, err = time.ParseInLocation(dateTimeLayout, s, Reference)
	case len(zone) == 5:
		t, err = time.Parse(dateTimeLayout+"-0700", s)
	default:
		t, err = time.Parse(dateTimeLayout+"Z07:00", s)
	}
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
