package entity

import "time"

type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "PENDING"
	StatusConfirmed         AppointmentStatus = "CONFIRMED"
	StatusInProgress        AppointmentStatus = "IN_PROGRESS"
	StatusPendingTestResult AppointmentStatus = "PENDING_TEST_RESULT"
	StatusCompleted         AppointmentStatus = "COMPLETED"
	StatusCancelled         AppointmentStatus = "CANCELLED"
)

// statusTransitions is the appointment lifecycle:
// PENDING -> CONFIRMED -> IN_PROGRESS -> COMPLETED, with cancellation allowed
// from PENDING/CONFIRMED and a PENDING_TEST_RESULT detour out of IN_PROGRESS.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:           {StatusConfirmed, StatusCancelled},
	StatusConfirmed:         {StatusInProgress, StatusCancelled},
	StatusInProgress:        {StatusPendingTestResult, StatusCompleted},
	StatusPendingTestResult: {StatusCompleted},
}

// Known reports whether the status is one of the recognized lifecycle states.
func (s AppointmentStatus) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusPendingTestResult, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from the status.
func (s AppointmentStatus) Terminal() bool {
	return s.Known() && len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// PatientInfo is the patient snapshot embedded in an appointment. It may be
// absent when the upstream record was created without a linked profile.
type PatientInfo struct {
	PatientID int        `gorm:"primaryKey;column:patient_id" json:"patientId"`
	FullName  string     `json:"fullName"`
	Gender    Gender     `gorm:"type:varchar(10)" json:"gender"`
	Birthday  *time.Time `gorm:"type:date" json:"birthday,omitempty"`
	Address   string     `json:"address,omitempty"`
}

func (PatientInfo) TableName() string {
	return "patients"
}

// Appointment is one scheduled patient visit. The view engine mutates it only
// through status/notes updates and never deletes it.
type Appointment struct {
	AppointmentID     int               `gorm:"primaryKey;autoIncrement;column:appointment_id" json:"appointmentId"`
	DoctorID          int               `gorm:"not null;index" json:"doctorId"`
	PatientID         int               `gorm:"not null;index" json:"patientId"`
	ScheduleID        int               `gorm:"index" json:"scheduleId"` // weak back-reference, lookup only
	WorkDate          time.Time         `gorm:"type:date;not null;index" json:"workDate"`
	SlotStart         string            `gorm:"type:time;not null" json:"slotStart"` // Format: HH:MM
	SlotEnd           string            `gorm:"type:time;not null" json:"slotEnd"`   // Format: HH:MM
	AppointmentStatus AppointmentStatus `gorm:"type:varchar(30);not null;index" json:"appointmentStatus"`
	Symptoms          string            `json:"symptoms"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"createdAt"`

	Patient *PatientInfo `gorm:"foreignKey:PatientID;references:PatientID" json:"patientInfo,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CalendarDate reports the calendar day this appointment belongs to.
func (a Appointment) CalendarDate() time.Time {
	return a.WorkDate
}

// AppointmentStats is the status histogram over one refined result set.
// Unrecognized statuses increment Total only.
type AppointmentStats struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Confirmed         int `json:"confirmed"`
	InProgress        int `json:"inProgress"`
	PendingTestResult int `json:"pendingTestResult"`
	Completed         int `json:"completed"`
	Cancelled         int `json:"cancelled"`
}
