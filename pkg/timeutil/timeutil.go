package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var ErrInvalidTime = errors.New("invalid time format, use HH:MM")

// ParseClock splits a "HH:MM" or "HH:MM:SS" value into hour and minute.
// Seconds are ignored, matching upstream records stored as time columns.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

// DurationHours returns the decimal hour count between two time-of-day
// values. When end is numerically before start the interval is assumed to
// cross midnight, so 21:00-01:00 yields 4.0, never a negative value.
func DurationHours(start, end string) (float64, error) {
	startHour, startMinute, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endHour, endMinute, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	hours := endHour - startHour
	minutes := endMinute - startMinute
	if minutes < 0 {
		minutes += 60
		hours--
	}
	// The wrap check runs after the borrow so a sub-hour backwards interval
	// like 08:30-08:00 still lands on the positive side of midnight.
	if hours < 0 {
		hours += 24
	}

	return float64(hours) + float64(minutes)/60, nil
}

// Round1 rounds to one decimal place, the precision used for reported
// workload totals.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// StartOfWeek returns the Monday 00:00:00 of the week containing ref.
func StartOfWeek(ref time.Time) time.Time {
	offset := int(ref.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started six days earlier
	}
	monday := ref.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// InWeekOf reports whether date falls in the Monday-through-Sunday week
// containing ref. The boundary is reference-relative, not a fixed calendar
// week.
func InWeekOf(date, ref time.Time) bool {
	start := StartOfWeek(ref)
	end := start.AddDate(0, 0, 7)
	return !date.Before(start) && date.Before(end)
}

// InMonthOf reports whether date shares calendar month and year with ref.
func InMonthOf(date, ref time.Time) bool {
	return date.Month() == ref.Month() && date.Year() == ref.Year()
}

// SameDay compares two instants by calendar day only, ignoring time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether date falls on the current calendar day.
func IsToday(date time.Time) bool {
	return SameDay(date, time.Now())
}

// TruncateToDay normalizes an instant to midnight of its calendar day.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatClock truncates a stored time value to HH:MM for display.
func FormatClock(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}

// FormatTimeRange renders a display range like "08:00 - 11:30".
func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s - %s", FormatClock(start), FormatClock(end))
}

// FormatDateRange renders a display range like "29/04/2024 - 02/06/2024".
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
}
