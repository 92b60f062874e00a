package calendar

import (
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"
)

// BuildGrid produces the calendar cells for the period containing ref,
// attaching the items that fall on each day. Month grids are padded with
// lead/trail days from the adjacent months so every row is a full
// Monday-through-Sunday week; week grids are always exactly seven days.
//
// The grid shape never depends on data presence: an empty item list still
// yields every cell, each with zero items.
func BuildGrid(ref time.Time, mode entity.ViewMode, items []entity.CalendarItem) []entity.CalendarDay {
	var dates []time.Time
	if mode == entity.ViewWeek {
		dates = weekDates(ref)
	} else {
		dates = monthDates(ref)
	}

	days := make([]entity.CalendarDay, len(dates))
	for i, d := range dates {
		attached := itemsOn(items, d)
		days[i] = entity.CalendarDay{
			Date:            d,
			IsCurrentPeriod: mode == entity.ViewWeek || timeutil.InMonthOf(d, ref),
			Items:           attached,
			ItemCount:       len(attached),
		}
	}
	return days
}

// monthDates lists every date of ref's month, left-padded with trailing
// dates of the previous month until the first cell is a Monday and
// right-padded with leading dates of the next month until the length is a
// multiple of seven.
func monthDates(ref time.Time) []time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	lead := int(first.Weekday()) - 1
	if lead < 0 {
		lead = 6
	}

	var dates []time.Time
	for i := lead; i > 0; i-- {
		dates = append(dates, first.AddDate(0, 0, -i))
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	for len(dates)%7 != 0 {
		dates = append(dates, dates[len(dates)-1].AddDate(0, 0, 1))
	}
	return dates
}

// weekDates lists the Monday through Sunday of ref's week.
func weekDates(ref time.Time) []time.Time {
	monday := timeutil.StartOfWeek(ref)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// itemsOn filters items to those on the given calendar day, preserving the
// source order. Matching is by (year, month, day) only.
func itemsOn(items []entity.CalendarItem, day time.Time) []entity.CalendarItem {
	matched := []entity.CalendarItem{}
	for _, item := range items {
		if timeutil.SameDay(item.CalendarDate(), day) {
			matched = append(matched, item)
		}
	}
	return matched
}
