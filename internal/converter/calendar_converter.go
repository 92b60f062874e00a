package converter

import (
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/dto"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/usecase"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"
)

// CalendarDayToResponse splits a day's attached items back into schedules
// and appointments for the wire shape.
func CalendarDayToResponse(day entity.CalendarDay) dto.CalendarDayResponse {
	response := dto.CalendarDayResponse{
		Date:            day.Date.Format(timeutil.DateLayout),
		IsCurrentPeriod: day.IsCurrentPeriod,
		IsToday:         timeutil.IsToday(day.Date),
		ItemCount:       day.ItemCount,
		Schedules:       []dto.ScheduleResponse{},
		Appointments:    []dto.AppointmentResponse{},
	}
	for _, item := range day.Items {
		switch v := item.(type) {
		case entity.Schedule:
			response.Schedules = append(response.Schedules, ScheduleToResponse(v))
		case entity.Appointment:
			response.Appointments = append(response.Appointments, AppointmentToResponse(v))
		}
	}
	return response
}

// SnapshotToResponse converts the engine's view model for delivery.
func SnapshotToResponse(snap usecase.ViewSnapshot) dto.CalendarViewResponse {
	response := dto.CalendarViewResponse{
		View:            string(snap.ViewMode),
		ReferenceDate:   snap.ReferenceDate.Format(timeutil.DateLayout),
		CalendarDays:    make([]dto.CalendarDayResponse, len(snap.CalendarDays)),
		TotalWeekHours:  snap.TotalWeekHours,
		TotalMonthHours: snap.TotalMonthHours,
		Appointments:    PageViewToResponse(snap.Appointments),
		Loading:         snap.Loading,
		Error:           snap.Error,
	}
	for i, day := range snap.CalendarDays {
		response.CalendarDays[i] = CalendarDayToResponse(day)
	}
	if len(snap.CalendarDays) > 0 {
		first := snap.CalendarDays[0].Date
		last := snap.CalendarDays[len(snap.CalendarDays)-1].Date
		response.PeriodLabel = timeutil.FormatDateRange(first, last)
	}

	if snap.SelectedDay != nil {
		response.SelectedDay = snap.SelectedDay.Format(timeutil.DateLayout)
		selected := CalendarDayToResponse(entity.CalendarDay{
			Date:            *snap.SelectedDay,
			IsCurrentPeriod: true,
			Items:           snap.SelectedDayItems,
			ItemCount:       len(snap.SelectedDayItems),
		})
		response.SelectedDayItems = &selected
	}

	return response
}
