// Package parse holds the primitive coercions shared by the TransXChange and
// NeTEx builders.
package parse

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

const (
	DateFormat      = "2006-01-02"
	DateTimeFormat  = "2006-01-02T15:04:05"
	TimeOfDayFormat = "15:04:05"
)

var london *time.Location

func init() {
	var err error
	london, err = time.LoadLocation("Europe/London")
	if err != nil {
		// binaries import time/tzdata so the zone is always bundled
		panic(err)
	}
}

// London returns the UK civil time zone used for naive timestamps.
func London() *time.Location {
	return london
}

// Int parses a base-10 integer, rejecting any non-digit payload. The second
// return is false when the value is absent or malformed.
func Int(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	negative := false
	if value[0] == '-' {
		negative = true
		value = value[1:]
		if value == "" {
			return 0, false
		}
	}

	result := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
		result = result*10 + int(r-'0')
	}

	if negative {
		result = -result
	}

	return result, true
}

// Bool accepts "true" and "false" case-insensitively; anything else is
// treated as absent.
func Bool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Date parses a YYYY-MM-DD civil date in the UK zone.
func Date(value string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(value), london)
}

// DateTime parses an ISO timestamp. Explicit offsets (including 'Z') are
// preserved. Naive timestamps are resolved in Europe/London, with BST or GMT
// chosen by the instant itself rather than by the current wall clock.
func DateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.ParseInLocation(DateTimeFormat, value, london)
}

// TimeOfDay parses a HH:MM:SS clock time.
func TimeOfDay(value string) (time.Time, error) {
	return time.Parse(TimeOfDayFormat, strings.TrimSpace(value))
}

// DurationSeconds normalises an ISO 8601 duration of the PnDTnHnMnS shape to
// whole seconds. Year, month and week components are rejected because they
// have no fixed length in seconds.
func DurationSeconds(value string) (int, error) {
	parsed, err := iso8601.ParseISO8601(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}

	if parsed.Y != 0 || parsed.M != 0 || parsed.W != 0 {
		return 0, fmt.Errorf("duration %q has calendar components", value)
	}

	return parsed.D*86400 + parsed.TH*3600 + parsed.TM*60 + parsed.TS, nil
}
