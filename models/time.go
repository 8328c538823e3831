package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// isoLayouts are tried in order when parsing an ISO-8601 timestamp.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

// ParseISOTime parses the ISO-8601 forms the API emits. Timestamps without a
// zone are taken as UTC.
func ParseISOTime(s string) (time.Time, error) {
	t, _, err := parseISOTime(s)
	return t, err
}

// parseISOTime also returns the layout that matched.
func parseISOTime(s string) (time.Time, string, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("invalid ISO-8601 time %q", s)
}

// formatISOTime writes t in layout, or in fallback for values that were not
// decoded from the wire.
func formatISOTime(t time.Time, layout, fallback string) string {
	if layout == "" {
		layout = fallback
	}
	return t.Format(layout)
}

// popTime decodes an ISO-8601 string field and reports the layout it used.
func popTime(o object, key string, required bool) (time.Time, string, bool, error) {
	var s string
	if required {
		if err := o.popRequired(key, &s); err != nil {
			return time.Time{}, "", false, err
		}
	} else {
		if _, ok := o[key]; !ok {
			return time.Time{}, "", false, nil
		}
		if err := o.pop(key, &s); err != nil {
			return time.Time{}, "", false, err
		}
	}

	t, layout, err := parseISOTime(s)
	if err != nil {
		return time.Time{}, "", false, fmt.Errorf("field %q: %w", key, err)
	}
	return t, layout, true, nil
}
