package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar date format.
	DateLayout = "2006/01/02"
	// ClockLayout is the canonical 24-hour clock time format.
	ClockLayout = "15:04"
)

// ParseClock parses an HH:MM clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockOf formats a time's clock component.
func ClockOf(t time.Time) string {
	return t.Format(ClockLayout)
}

// DateOf formats a time's calendar date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// DurationBetween returns the minutes from start to end, treating an end
// earlier than the start as crossing midnight once.
func DurationBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d < 0 {
		d += 24 * 60
	}
	return d, nil
}

// NormalizeDate canonicalizes a date string: trims whitespace, drops any
// time suffix, and converts dash separators to slashes. It does not
// validate the result.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "-", "/")
}

// NormalizeWire canonicalizes a record as received from the remote API,
// which may render dates as full ISO timestamps and times as ISO clock
// strings. Already-canonical fields pass through unchanged.
func (r Record) NormalizeWire() Record {
	r.Date = normalizeWireDate(r.Date)
	r.StartTime = normalizeWireClock(r.StartTime)
	r.EndTime = normalizeWireClock(r.EndTime)
	return r
}

func normalizeWireDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format(DateLayout)
	}
	return NormalizeDate(s)
}

func normalizeWireClock(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format(ClockLayout)
	}
	return s
}
