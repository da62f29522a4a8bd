package recordstore

import (
	"fmt"
	"sort"
	"time"

	"studyrec/internal/daybound"
	"studyrec/internal/record"
)

// Period selects an aggregation granularity.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Bucket is one aggregation row: total minutes and a per-category
// breakdown for one period.
type Bucket struct {
	Label      string
	Minutes    int
	ByCategory map[string]int
}

// Aggregate groups expanded records into day, ISO week, or month buckets
// keyed by logical day, sorted by label. Attribution follows the logical
// day, not the stored date, so boundary-split parts land on both sides.
func Aggregate(period Period, records []record.Record) []Bucket {
	byLabel := map[string]*Bucket{}
	for _, r := range daybound.Expand(records) {
		day := daybound.BelongingDate(r.Date, r.StartTime)
		if day == "" {
			continue
		}
		label := periodLabel(period, day)
		b, ok := byLabel[label]
		if !ok {
			b = &Bucket{Label: label, ByCategory: map[string]int{}}
			byLabel[label] = b
		}
		b.Minutes += r.Duration
		b.ByCategory[r.Category] += r.Duration
	}

	out := make([]Bucket, 0, len(byLabel))
	for _, b := range byLabel {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func periodLabel(period Period, day string) string {
	switch period {
	case PeriodWeek, PeriodMonth:
		t, err := time.ParseInLocation(record.DateLayout, day, time.Local)
		if err != nil {
			return day
		}
		if period == PeriodMonth {
			return t.Format("2006/01")
		}
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return day
	}
}
