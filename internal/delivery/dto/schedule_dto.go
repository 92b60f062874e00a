package dto

// Request DTOs

type CalendarViewRequest struct {
	View        string `validate:"omitempty,oneof=month week"`
	Date        string `validate:"omitempty,datetime=2006-01-02"`
	SelectedDay string `validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type ScheduleResponse struct {
	ScheduleID int    `json:"scheduleId"`
	DoctorID   int    `json:"doctorId"`
	WorkDate   string `json:"workDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Shift      string `json:"shift"`
	RoomID     int    `json:"roomId,omitempty"`
	RoomNote   string `json:"roomNote,omitempty"`
	Floor      int    `json:"floor,omitempty"`
	Building   string `json:"building,omitempty"`
	TimeRange  string `json:"timeRange"`
}

type CalendarDayResponse struct {
	Date            string                `json:"date"`
	IsCurrentPeriod bool                  `json:"isCurrentPeriod"`
	IsToday         bool                  `json:"isToday"`
	ItemCount       int                   `json:"itemCount"`
	Schedules       []ScheduleResponse    `json:"schedules"`
	Appointments    []AppointmentResponse `json:"appointments"`
}

type CalendarViewResponse struct {
	View             string                   `json:"view"`
	ReferenceDate    string                   `json:"referenceDate"`
	PeriodLabel      string                   `json:"periodLabel,omitempty"`
	CalendarDays     []CalendarDayResponse    `json:"calendarDays"`
	SelectedDay      string                   `json:"selectedDay,omitempty"`
	SelectedDayItems *CalendarDayResponse     `json:"selectedDayItems,omitempty"`
	TotalWeekHours   float64                  `json:"totalWeekHours"`
	TotalMonthHours  float64                  `json:"totalMonthHours"`
	Appointments     *AppointmentPageResponse `json:"appointments,omitempty"`
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
}
