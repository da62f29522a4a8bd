package record

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"04:00", 240, false},
		{"23:59", 1439, false},
		{"9:05", 545, false},
		{" 10:30 ", 630, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"12", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{240, "04:00"},
		{545, "09:05"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDurationBetween(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
		wantErr    bool
	}{
		{"21:00", "22:30", 90, false},
		{"10:00", "10:00", 0, false},
		{"23:30", "01:00", 90, false}, // crosses midnight
		{"00:00", "23:59", 1439, false},
		{"bad", "10:00", 0, true},
		{"10:00", "bad", 0, true},
	}

	for _, tt := range tests {
		got, err := DurationBetween(tt.start, tt.end)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DurationBetween(%q, %q): expected error", tt.start, tt.end)
			}
			continue
		}
		if err != nil {
			t.Errorf("DurationBetween(%q, %q): unexpected error: %v", tt.start, tt.end, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DurationBetween(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2026/08/28", "2026/08/28"},
		{"2026-08-28", "2026/08/28"},
		{"2026-08-28T15:04:05", "2026/08/28"},
		{"2026/08/28 15:04", "2026/08/28"},
		{"  2026-08-28  ", "2026/08/28"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.input); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeWire(t *testing.T) {
	// Build ISO inputs from local times so the expectations hold in any
	// timezone the test runs in.
	day := time.Date(2026, time.August, 20, 9, 30, 0, 0, time.Local)

	r := Record{
		Date:      day.Format(time.RFC3339),
		StartTime: day.Format(time.RFC3339),
		EndTime:   day.Add(90 * time.Minute).Format(time.RFC3339),
	}
	got := r.NormalizeWire()

	if got.Date != "2026/08/20" {
		t.Errorf("Date = %q, want 2026/08/20", got.Date)
	}
	if got.StartTime != "09:30" {
		t.Errorf("StartTime = %q, want 09:30", got.StartTime)
	}
	if got.EndTime != "11:00" {
		t.Errorf("EndTime = %q, want 11:00", got.EndTime)
	}
}

func TestNormalizeWirePassthrough(t *testing.T) {
	r := Record{Date: "2026/08/20", StartTime: "09:30", EndTime: "11:00"}
	got := r.NormalizeWire()
	if got != r {
		t.Errorf("canonical record changed: %+v", got)
	}
}
