package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// tzSuffix matches an explicit numeric timezone offset at the end of a
// timestamp string, e.g. "+03:00" or "-0300".
var tzSuffix = regexp.MustCompile(`[+-]\d{2}:?\d{2}$`)

// fracSuffix matches trailing fractional seconds without a zone marker.
var fracSuffix = regexp.MustCompile(`\.\d+$`)

// ParseSendTimestamp parses a send timestamp as received from the webhook or
// manual entry. Legacy rows were stored without a timezone marker; a value
// that has a time component but no marker is treated as UTC (the marker is
// appended before parsing). Values with an explicit zone, and date-only
// values, are parsed as-is.
func ParseSendTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse send timestamp: empty")
	}

	if strings.Contains(s, "T") && !strings.HasSuffix(s, "Z") && !tzSuffix.MatchString(s) {
		s = fracSuffix.ReplaceAllString(s, "") + "Z"
	}

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00", // minute precision, as produced by datetime-local inputs
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("parse send timestamp: invalid value %q", s)
}
