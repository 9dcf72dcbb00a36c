package cdc

import (
	"strings"
	"time"
)

// CDC timestamps look like 20250604035420.132Z, but vendors drop the
// millisecond part or the zone designator, so parsing walks a layout list.
var timestampLayouts = []string{
	"20060102150405.000Z0700",
	"20060102150405Z0700",
	"20060102150405.000",
	"20060102150405",
}

// ParseTimestamp parses a CDC record timestamp. Unparseable input reports
// false and the zero time; callers sort such messages earliest and skip
// duration computation.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
