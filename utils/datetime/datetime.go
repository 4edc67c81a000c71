// Package datetime provides small date and time helpers: lenient parsing of
// common interchange formats, leap year arithmetic and clock formatting.
package datetime

import (
	"fmt"
	"math"
	"time"
)

// rfc2822Layouts covers the variants actually seen in mail and HTTP headers:
// with and without the weekday, with numeric zones and with zone names.
var rfc2822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 -0700",
}

// ParseRFC2822 parses an RFC 2822 date string (the format used in mail
// headers), accepting the common layout variations.
func ParseRFC2822(s string) (time.Time, error) {
	for _, layout := range rfc2822Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as an RFC 2822 date", s)
}

// iso8601Layouts accepts full timestamps, date-only and reduced-precision
// forms, with 'Z' or numeric offsets.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
}

// ParseISO8601 parses an ISO 8601 date or timestamp string.
func ParseISO8601(s string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as an ISO 8601 date", s)
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatSpan renders a duration as a clock span "HH:mm:ss.sss". Negative
// durations get a leading minus. Hours do not wrap.
func FormatSpan(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	ms := (d - s*time.Second) / time.Millisecond

	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, ms)
}

// HandsAngle returns the smaller angle in degrees between the hour and minute
// hands of an analog clock showing the wall-clock time of t. The result is in
// [0, 180].
func HandsAngle(t time.Time) float64 {
	h := float64(t.Hour()%12) + float64(t.Minute())/60
	m := float64(t.Minute())

	angle := math.Abs(h*30 - m*6)
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}
