package entity

import "time"

type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftEvening   Shift = "EVENING"
	ShiftNight     Shift = "NIGHT"
)

// Schedule is one work shift for one doctor. Instances come from an external
// fetch and are never mutated by the view engine; a fetch cycle owns them
// until the cache is invalidated.
type Schedule struct {
	ScheduleID int       `gorm:"primaryKey;autoIncrement;column:schedule_id" json:"scheduleId"`
	DoctorID   int       `gorm:"not null;index" json:"doctorId"`
	WorkDate   time.Time `gorm:"type:date;not null;index" json:"workDate"`
	StartTime  string    `gorm:"type:time;not null" json:"startTime"` // Format: HH:MM
	EndTime    string    `gorm:"type:time;not null" json:"endTime"`   // Format: HH:MM
	Shift      Shift     `gorm:"type:varchar(20)" json:"shift"`
	RoomID     int       `gorm:"index" json:"roomId"`
	RoomNote   string    `json:"roomNote"`
	Floor      int       `json:"floor"`
	Building   string    `json:"building"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// CalendarDate reports the calendar day this schedule belongs to.
func (s Schedule) CalendarDate() time.Time {
	return s.WorkDate
}
