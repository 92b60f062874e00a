package timeutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"overnight shift", "21:00", "01:00", 4.0},
		{"zero length", "08:00", "08:00", 0.0},
		{"minute borrow", "08:15", "09:00", 0.75},
		{"full day shift", "07:00", "16:00", 9.0},
		{"with seconds", "07:30:00", "11:00:00", 3.5},
		{"overnight with minutes", "22:30", "06:15", 7.75},
		{"sub-hour wrap stays positive", "08:30", "08:00", 23.5},
		{"wrap with borrow", "23:45", "00:30", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationHours(tt.start, tt.end)
			if err != nil {
				t.Fatalf("DurationHours(%q, %q) returned error: %v", tt.start, tt.end, err)
			}
			if got != tt.want {
				t.Errorf("DurationHours(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDurationHoursInvalid(t *testing.T) {
	invalid := []struct {
		start string
		end   string
	}{
		{"", "08:00"},
		{"8am", "09:00"},
		{"08:00", "25:00"},
		{"08:61", "09:00"},
		{"08", "09:00"},
	}

	for _, tt := range invalid {
		if _, err := DurationHours(tt.start, tt.end); err == nil {
			t.Errorf("DurationHours(%q, %q) expected error, got nil", tt.start, tt.end)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(7.749999); got != 7.7 {
		t.Errorf("Round1(7.749999) = %v, want 7.7", got)
	}
	if got := Round1(7.75); got != 7.8 {
		t.Errorf("Round1(7.75) = %v, want 7.8", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"wednesday", date(2024, time.May, 15), date(2024, time.May, 13)},
		{"monday", date(2024, time.May, 13), date(2024, time.May, 13)},
		{"sunday belongs to prior monday", date(2024, time.May, 19), date(2024, time.May, 13)},
		{"crossing month boundary", date(2024, time.June, 1), date(2024, time.May, 27)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.ref); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestInWeekOf(t *testing.T) {
	ref := date(2024, time.May, 15) // Wednesday

	// Reflexive for any reference.
	for _, r := range []time.Time{ref, date(2024, time.May, 19), date(2023, time.January, 1)} {
		if !InWeekOf(r, r) {
			t.Errorf("InWeekOf(%v, %v) = false, want true", r, r)
		}
	}

	tests := []struct {
		date time.Time
		want bool
	}{
		{date(2024, time.May, 13), true},  // Monday of the week
		{date(2024, time.May, 19), true},  // Sunday of the week
		{date(2024, time.May, 12), false}, // Sunday of the prior week
		{date(2024, time.May, 20), false}, // Monday of the next week
	}

	for _, tt := range tests {
		if got := InWeekOf(tt.date, ref); got != tt.want {
			t.Errorf("InWeekOf(%v, %v) = %v, want %v", tt.date, ref, got, tt.want)
		}
	}
}

func TestInMonthOf(t *testing.T) {
	ref := date(2024, time.May, 15)

	if !InMonthOf(date(2024, time.May, 1), ref) {
		t.Error("first of month should be in month")
	}
	if InMonthOf(date(2024, time.April, 30), ref) {
		t.Error("prior month should not match")
	}
	if InMonthOf(date(2023, time.May, 15), ref) {
		t.Error("same month of another year should not match")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.May, 15, 8, 30, 0, 0, time.Local)
	b := time.Date(2024, time.May, 15, 23, 59, 59, 0, time.Local)
	if !SameDay(a, b) {
		t.Error("instants on the same calendar day should match")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Error("instants on different days should not match")
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatClock("08:00:00"); got != "08:00" {
		t.Errorf("FormatClock = %q, want 08:00", got)
	}
	if got := FormatTimeRange("08:00:00", "11:30:00"); got != "08:00 - 11:30" {
		t.Errorf("FormatTimeRange = %q", got)
	}
	if got := FormatDateRange(date(2024, time.April, 29), date(2024, time.June, 2)); got != "29/04/2024 - 02/06/2024" {
		t.Errorf("FormatDateRange = %q", got)
	}
}
