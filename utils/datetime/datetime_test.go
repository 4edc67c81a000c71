package datetime_test

import (
	"testing"
	"time"

	"cssel/utils/datetime"
)

func TestParseRFC2822(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"Tue, 01 Apr 2003 13:01:02 +0200", time.Date(2003, 4, 1, 13, 1, 2, 0, time.FixedZone("", 2*3600))},
		{"1 Apr 2003 13:01:02 -0500", time.Date(2003, 4, 1, 13, 1, 2, 0, time.FixedZone("", -5*3600))},
		{"Mon, 06 Oct 2014 08:30 +0000", time.Date(2014, 10, 6, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := datetime.ParseRFC2822(tt.in)
			if err != nil {
				t.Fatalf("ParseRFC2822() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRFC2822() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := datetime.ParseRFC2822("not a date"); err == nil {
		t.Error("ParseRFC2822 should fail on garbage")
	}
}

func TestParseISO8601(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2014-10-06T14:30:45Z", time.Date(2014, 10, 6, 14, 30, 45, 0, time.UTC)},
		{"2014-10-06T14:30:45+02:00", time.Date(2014, 10, 6, 14, 30, 45, 0, time.FixedZone("", 2*3600))},
		{"2014-10-06T14:30", time.Date(2014, 10, 6, 14, 30, 0, 0, time.UTC)},
		{"2014-10-06", time.Date(2014, 10, 6, 0, 0, 0, 0, time.UTC)},
		{"2014-10", time.Date(2014, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := datetime.ParseISO8601(tt.in)
			if err != nil {
				t.Fatalf("ParseISO8601() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseISO8601() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := datetime.ParseISO8601("06.10.2014"); err == nil {
		t.Error("ParseISO8601 should fail on non-ISO input")
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2000, true},
		{1900, false},
		{2016, true},
		{2015, false},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		if got := datetime.IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := datetime.DaysInMonth(2016, time.February); got != 29 {
		t.Errorf("DaysInMonth(2016, Feb) = %d, want 29", got)
	}
	if got := datetime.DaysInMonth(2015, time.February); got != 28 {
		t.Errorf("DaysInMonth(2015, Feb) = %d, want 28", got)
	}
	if got := datetime.DaysInMonth(2015, time.December); got != 31 {
		t.Errorf("DaysInMonth(2015, Dec) = %d, want 31", got)
	}
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{time.Second, "00:00:01.000"},
		{90*time.Minute + 250*time.Millisecond, "01:30:00.250"},
		{25 * time.Hour, "25:00:00.000"},
		{-time.Minute, "-00:01:00.000"},
	}

	for _, tt := range tests {
		if got := datetime.FormatSpan(tt.d); got != tt.want {
			t.Errorf("FormatSpan(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHandsAngle(t *testing.T) {
	tests := []struct {
		h, m int
		want float64
	}{
		{12, 0, 0},
		{3, 0, 90},
		{6, 0, 180},
		{9, 0, 90},
		{3, 30, 75},
		{12, 30, 165},
	}

	for _, tt := range tests {
		at := time.Date(2020, 1, 1, tt.h, tt.m, 0, 0, time.UTC)
		if got := datetime.HandsAngle(at); got != tt.want {
			t.Errorf("HandsAngle(%02d:%02d) = %v, want %v", tt.h, tt.m, got, tt.want)
		}
	}
}
