// Package daybound attributes sessions to logical days. A day runs from
// 04:00 to 04:00 the next morning, so late-night sessions before 4 AM count
// toward the previous calendar day.
package daybound

import (
	"time"

	"studyrec/internal/record"
)

const (
	// BoundaryHour is the hour at which a new logical day begins.
	BoundaryHour = 4
	// BoundaryClock is the boundary as a clock string.
	BoundaryClock = "04:00"

	boundaryMinutes = BoundaryHour * 60

	// neutralHour anchors date-only parsing at midday so that timezone
	// conversions cannot shift the calendar day.
	neutralHour = 12
)

// LogicalDate returns the logical day label (YYYY/MM/DD) for an instant.
func LogicalDate(t time.Time) string {
	if t.Hour() < BoundaryHour {
		t = t.AddDate(0, 0, -1)
	}
	return record.DateOf(t)
}

// LogicalDateFrom is the string form of LogicalDate: the date may use dash
// or slash separators, and the hour is taken from timeStr when present,
// defaulting to midday otherwise.
func LogicalDateFrom(dateStr, timeStr string) string {
	return belongs(dateStr, timeStr)
}

// BelongingDate returns the logical day a persisted record's fields belong
// to. An empty date yields an empty string. An unparseable date yields the
// normalized input unchanged, and an unparseable or absent time defaults
// the hour to midday; attribution never fails on bad stored data.
func BelongingDate(dateStr, timeStr string) string {
	if dateStr == "" {
		return ""
	}
	return belongs(dateStr, timeStr)
}

func belongs(dateStr, timeStr string) string {
	normalized := record.NormalizeDate(dateStr)
	day, err := time.ParseInLocation(record.DateLayout, normalized, time.Local)
	if err != nil {
		return normalized
	}
	if clockHour(timeStr) < BoundaryHour {
		day = day.AddDate(0, 0, -1)
	}
	return record.DateOf(day)
}

func clockHour(timeStr string) int {
	if timeStr == "" {
		return neutralHour
	}
	minutes, err := record.ParseClock(timeStr)
	if err != nil {
		return neutralHour
	}
	return minutes / 60
}

// Split divides a record that crosses the 4 AM boundary into two view
// copies: one ending at the boundary and one starting there. Records that
// do not cross, or whose times cannot be parsed, pass through unchanged.
// Split output is for viewing and aggregation only and is never persisted.
func Split(r record.Record) []record.Record {
	start, err := record.ParseClock(r.StartTime)
	if err != nil {
		return []record.Record{r}
	}
	end, err := record.ParseClock(r.EndTime)
	if err != nil {
		return []record.Record{r}
	}
	if start >= boundaryMinutes || end < boundaryMinutes {
		return []record.Record{r}
	}

	before := r
	before.EndTime = BoundaryClock
	before.Duration = boundaryMinutes - start
	before.Split = true
	before.SplitPart = "before"

	after := r
	after.StartTime = BoundaryClock
	after.Duration = end - boundaryMinutes
	after.Split = true
	after.SplitPart = "after"

	return []record.Record{before, after}
}

// Expand flat-maps Split over a record list. Aggregation and listing views
// consume expanded records so boundary-crossing time lands on both days.
func Expand(records []record.Record) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		out = append(out, Split(r)...)
	}
	return out
}

// TotalMinutesOn sums the expanded durations attributed to one logical day.
func TotalMinutesOn(records []record.Record, day string) int {
	total := 0
	for _, r := range Expand(records) {
		if BelongingDate(r.Date, r.StartTime) == day {
			total += r.Duration
		}
	}
	return total
}
