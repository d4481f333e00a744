package dataset

import (
	"fmt"
	"time"
)

// Layouts carrying an explicit zone offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Naive layouts are interpreted in the caller-supplied timezone; the
// timestamp's provenance is an explicit input, never inferred from position
// in the file.
var naiveLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a vendor timestamp string. Zone-aware forms keep
// their own offset; naive forms are treated as being in naiveTZ.
func ParseTimestamp(s string, naiveTZ *time.Location) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, naiveTZ); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// minuteOfClock extracts the minute-of-day from a timestamp's wall clock.
// Minute-quote timestamps are already exchange-local, so no zone conversion
// applies here.
func minuteOfClock(s string) (int, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Hour()*60 + t.Minute(), nil
	}
	t, err := ParseTimestamp(s, time.UTC)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
