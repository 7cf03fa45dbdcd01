package dateutil

import (
	"testing"
	"time"
)

func TestFormatDayInvariantUnderTimeOfDay(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local),
		time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.Local),
	}

	for _, tm := range times {
		if got := FormatDay(NormalizeToDay(tm)); got != "2024-03-05" {
			t.Errorf("FormatDay(NormalizeToDay(%v)) = %q, want 2024-03-05", tm, got)
		}
	}
}

func TestFormatDayZeroPadding(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	if got := FormatDay(d); got != "2024-01-02" {
		t.Errorf("FormatDay = %q, want 2024-01-02", got)
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{
			// Monday, first ISO week of 2024.
			name: "monday week one",
			day:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			want: "2024-W01",
		},
		{
			// Sunday, still ISO week 52 of 2023.
			name: "sunday of previous week-year",
			day:  time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local),
			want: "2023-W52",
		},
		{
			// January 1st 2023 was a Sunday and belongs to 2022's last week.
			name: "new year inside previous week-year",
			day:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local),
			want: "2022-W52",
		},
		{
			name: "midyear zero-padded week",
			day:  time.Date(2024, 2, 14, 0, 0, 0, 0, time.Local),
			want: "2024-W07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekKey(tt.day); got != tt.want {
				t.Errorf("WeekKey(%s) = %q, want %q", FormatDay(tt.day), got, tt.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2024, 9, 30, 0, 0, 0, 0, time.Local)
	if got := MonthKey(d); got != "2024-09" {
		t.Errorf("MonthKey = %q, want 2024-09", got)
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-01-15", false},
		{"2024-13-01", true},
		{"not-a-date", true},
		{"", true},
		{"2024-1-5", true},
	}

	for _, tt := range tests {
		d, err := ParseDay(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDay(%q) expected error, got %v", tt.input, d)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDay(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got := FormatDay(d); got != tt.input {
			t.Errorf("round trip of %q gave %q", tt.input, got)
		}
	}
}

func TestDisplayDay(t *testing.T) {
	today := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"today", today, "Today"},
		{"yesterday", today.AddDate(0, 0, -1), "Yesterday"},
		{"tomorrow", today.AddDate(0, 0, 1), "Tomorrow"},
		{"other day", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), "June 1, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayDay(tt.day, today); got != tt.want {
				t.Errorf("DisplayDay = %q, want %q", got, tt.want)
			}
		})
	}
}
