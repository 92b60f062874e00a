package repository

import (
	"context"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
)

// AppointmentSource resolves the server-side filter stage and pagination for
// appointments, and applies the two mutations the view engine is allowed to
// issue.
type AppointmentSource interface {
	FetchAppointmentPage(ctx context.Context, doctorID int, q entity.AppointmentQuery) (entity.Page[entity.Appointment], error)
	FetchAppointment(ctx context.Context, appointmentID int) (*entity.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID int, status entity.AppointmentStatus) error
	UpdateAppointmentNotes(ctx context.Context, appointmentID int, notes string) error
}
