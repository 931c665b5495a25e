package utils

import (
	"fmt"
	"strings"
	"time"
)

// The API serialises datetimes either as HTTP dates (Flask's default JSON
// encoder) or as ISO 8601 strings.
var timestampLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseAPITime parses any timestamp layout the API emits. Values without a
// zone are taken as UTC.
func ParseAPITime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// FormatAPITime renders t the way the API expects scheduled dates.
func FormatAPITime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
