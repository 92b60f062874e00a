package converter

import (
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/dto"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"
)

// ScheduleToResponse converts a Schedule entity to its response DTO.
func ScheduleToResponse(schedule entity.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ScheduleID: schedule.ScheduleID,
		DoctorID:   schedule.DoctorID,
		WorkDate:   schedule.WorkDate.Format(timeutil.DateLayout),
		StartTime:  timeutil.FormatClock(schedule.StartTime),
		EndTime:    timeutil.FormatClock(schedule.EndTime),
		Shift:      string(schedule.Shift),
		RoomID:     schedule.RoomID,
		RoomNote:   schedule.RoomNote,
		Floor:      schedule.Floor,
		Building:   schedule.Building,
		TimeRange:  timeutil.FormatTimeRange(schedule.StartTime, schedule.EndTime),
	}
}

// SchedulesToResponses converts a slice of Schedule entities.
func SchedulesToResponses(schedules []entity.Schedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = ScheduleToResponse(schedule)
	}
	return responses
}
