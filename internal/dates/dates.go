// Package dates holds the date handling shared by the mapper, the validator
// and the statistics code. Everything is computed in UTC.
package dates

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	DisplayLayout = "02/01/2006"
	ISOLayout     = "2006-01-02"
)

var (
	dayFirst = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

	layouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		ISOLayout,
		"2006/01/02",
	}
)

// ParseDate accepts DD/MM/YYYY (as shown in the sheet) as well as ISO dates
// and timestamps.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if m := dayFirst.FindStringSubmatch(value); m != nil {
		t, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders value as DD/MM/YYYY. Absent values give "", values that
// don't parse are returned as they came.
func FormatDate(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(DisplayLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return FormatDate(*v)
	case string:
		return formatString(v)
	case fmt.Stringer:
		return formatString(v.String())
	default:
		return formatString(fmt.Sprint(v))
	}
}

func formatString(s string) string {
	if s == "" {
		return ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DisplayLayout)
}

// ProcessingDays is the number of started days between the requested and the
// closing date. A closing date before the requested one counts as 0.
func ProcessingDays(requestedDate, closingDate string) int {
	requested, ok := ParseDate(requestedDate)
	if !ok {
		return 0
	}
	closing, ok := ParseDate(closingDate)
	if !ok {
		return 0
	}

	days := int(math.Ceil(closing.Sub(requested).Hours() / 24))
	return NonNegative(days)
}

func NonNegative(days int) int {
	if days < 0 {
		return 0
	}
	return days
}

// StartOfDay truncates t to midnight UTC of the same calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
