package entity

import "time"

type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
)

func (v ViewMode) Valid() bool {
	return v == ViewMonth || v == ViewWeek
}

// CalendarItem is anything that can be attached to a calendar day. Both
// Schedule and Appointment satisfy it.
type CalendarItem interface {
	CalendarDate() time.Time
}

// CalendarDay is one cell of a month or week grid. It is derived state,
// recomputed on every grid rebuild.
type CalendarDay struct {
	Date            time.Time      `json:"date"`
	IsCurrentPeriod bool           `json:"isCurrentPeriod"` // false for lead/trail days
	Items           []CalendarItem `json:"items"`
	ItemCount       int            `json:"itemCount"`
}
