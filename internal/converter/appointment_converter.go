package converter

import (
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/dto"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/usecase"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"
)

var statusText = map[entity.AppointmentStatus]string{
	entity.StatusPending:           "Waiting",
	entity.StatusConfirmed:         "Confirmed",
	entity.StatusInProgress:        "In progress",
	entity.StatusPendingTestResult: "Awaiting test result",
	entity.StatusCompleted:         "Completed",
	entity.StatusCancelled:         "Cancelled",
}

// StatusToText returns the display label for a status; unknown statuses fall
// back to the raw value.
func StatusToText(status entity.AppointmentStatus) string {
	if text, ok := statusText[status]; ok {
		return text
	}
	return string(status)
}

// AppointmentToResponse converts an Appointment entity to its response DTO.
func AppointmentToResponse(a entity.Appointment) dto.AppointmentResponse {
	response := dto.AppointmentResponse{
		AppointmentID: a.AppointmentID,
		DoctorID:      a.DoctorID,
		ScheduleID:    a.ScheduleID,
		WorkDate:      a.WorkDate.Format(timeutil.DateLayout),
		SlotStart:     timeutil.FormatClock(a.SlotStart),
		SlotEnd:       timeutil.FormatClock(a.SlotEnd),
		TimeSlot:      timeutil.FormatTimeRange(a.SlotStart, a.SlotEnd),
		Status:        string(a.AppointmentStatus),
		StatusText:    StatusToText(a.AppointmentStatus),
		Symptoms:      a.Symptoms,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}

	if a.Patient != nil {
		info := &dto.PatientInfoResponse{
			PatientID: a.Patient.PatientID,
			FullName:  a.Patient.FullName,
			Gender:    string(a.Patient.Gender),
			Address:   a.Patient.Address,
		}
		if a.Patient.Birthday != nil {
			info.Birthday = a.Patient.Birthday.Format(timeutil.DateLayout)
		}
		response.PatientInfo = info
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = AppointmentToResponse(a)
	}
	return responses
}

// PageViewToResponse flattens one refined page into the wire shape. The
// content and counters come from the refined set; only the pagination
// bookkeeping reflects the server page.
func PageViewToResponse(view *usecase.AppointmentPageView) *dto.AppointmentPageResponse {
	if view == nil {
		return nil
	}
	return &dto.AppointmentPageResponse{
		Content:       AppointmentsToResponses(view.Refined),
		PageNo:        view.Page.PageNo,
		PageSize:      view.Page.PageSize,
		TotalElements: view.Page.TotalElements,
		TotalPages:    view.Page.TotalPages,
		Last:          view.Page.Last,
		VisibleCount:  view.VisibleCount,
		Stats:         statsToResponse(view.Stats),
		DoctorName:    view.DoctorName,
	}
}

func statsToResponse(stats entity.AppointmentStats) dto.AppointmentStatsResponse {
	return dto.AppointmentStatsResponse{
		Total:             stats.Total,
		Pending:           stats.Pending,
		Confirmed:         stats.Confirmed,
		InProgress:        stats.InProgress,
		PendingTestResult: stats.PendingTestResult,
		Completed:         stats.Completed,
		Cancelled:         stats.Cancelled,
	}
}
