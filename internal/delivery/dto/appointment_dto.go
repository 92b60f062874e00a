package dto

import "time"

// Request DTOs

type AppointmentListRequest struct {
	Page       int    `validate:"gte=0"`
	Size       int    `validate:"gte=1,lte=100"`
	Date       string `validate:"omitempty,datetime=2006-01-02"`
	WorkDate   string `validate:"omitempty,datetime=2006-01-02"`
	Status     string `validate:"omitempty"`
	Shift      string `validate:"omitempty,oneof=MORNING AFTERNOON EVENING NIGHT"`
	RoomID     int    `validate:"gte=0"`
	Gender     string `validate:"omitempty,oneof=all MALE FEMALE OTHER"`
	SearchTerm string
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,apptstatus"`
}

type UpdateAppointmentNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=2000"`
}

// Response DTOs

type PatientInfoResponse struct {
	PatientID int    `json:"patientId"`
	FullName  string `json:"fullName"`
	Gender    string `json:"gender"`
	Birthday  string `json:"birthday,omitempty"`
	Address   string `json:"address,omitempty"`
}

type AppointmentResponse struct {
	AppointmentID int                  `json:"appointmentId"`
	DoctorID      int                  `json:"doctorId"`
	ScheduleID    int                  `json:"scheduleId,omitempty"`
	WorkDate      string               `json:"workDate"`
	SlotStart     string               `json:"slotStart"`
	SlotEnd       string               `json:"slotEnd"`
	TimeSlot      string               `json:"timeSlot"`
	Status        string               `json:"appointmentStatus"`
	StatusText    string               `json:"statusText"`
	Symptoms      string               `json:"symptoms"`
	Notes         string               `json:"notes,omitempty"`
	PatientInfo   *PatientInfoResponse `json:"patientInfo,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type AppointmentStatsResponse struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Confirmed         int `json:"confirmed"`
	InProgress        int `json:"inProgress"`
	PendingTestResult int `json:"pendingTestResult"`
	Completed         int `json:"completed"`
	Cancelled         int `json:"cancelled"`
}

type AppointmentPageResponse struct {
	Content       []AppointmentResponse    `json:"content"`
	PageNo        int                      `json:"pageNo"`
	PageSize      int                      `json:"pageSize"`
	TotalElements int64                    `json:"totalElements"`
	TotalPages    int                      `json:"totalPages"`
	Last          bool                     `json:"last"`
	VisibleCount  int                      `json:"visibleCount"`
	Stats         AppointmentStatsResponse `json:"stats"`
	DoctorName    string                   `json:"doctorName,omitempty"`
}
