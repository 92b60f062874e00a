package repository

import (
	"context"
	"errors"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	domainRepo "github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentSource struct {
	db *gorm.DB
}

func NewAppointmentSource(db *gorm.DB) domainRepo.AppointmentSource {
	return &appointmentSource{db: db}
}

// FetchAppointmentPage resolves the server-side filter stage: workDate,
// status, shift, and room travel as WHERE clauses; the count and the
// offset/limit window are taken in the same filtered scope.
func (r *appointmentSource) FetchAppointmentPage(ctx context.Context, doctorID int, q entity.AppointmentQuery) (entity.Page[entity.Appointment], error) {
	scope := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("appointments.doctor_id = ?", doctorID)

	if q.WorkDate != "" {
		scope = scope.Where("appointments.work_date = ?", q.WorkDate)
	}
	if q.Status != "" {
		scope = scope.Where("appointments.appointment_status = ?", q.Status)
	}
	if q.Shift != "" || q.RoomID != 0 {
		scope = scope.Joins("JOIN schedules ON schedules.schedule_id = appointments.schedule_id")
		if q.Shift != "" {
			scope = scope.Where("schedules.shift = ?", q.Shift)
		}
		if q.RoomID != 0 {
			scope = scope.Where("schedules.room_id = ?", q.RoomID)
		}
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return entity.Page[entity.Appointment]{}, domainRepo.NewFetchError("appointments count", err)
	}

	var appointments []entity.Appointment
	err := scope.
		Preload("Patient").
		Order("appointments.work_date ASC, appointments.slot_start ASC").
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Find(&appointments).Error
	if err != nil {
		return entity.Page[entity.Appointment]{}, domainRepo.NewFetchError("appointments page", err)
	}

	return entity.NewPage(appointments, q.Page, q.Size, total), nil
}

func (r *appointmentSource) FetchAppointment(ctx context.Context, appointmentID int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("appointment_id = ?", appointmentID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainRepo.NewFetchError("appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentSource) UpdateAppointmentStatus(ctx context.Context, appointmentID int, status entity.AppointmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("appointment_id = ?", appointmentID).
		Update("appointment_status", status)
	if result.Error != nil {
		return domainRepo.NewFetchError("appointment status update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *appointmentSource) UpdateAppointmentNotes(ctx context.Context, appointmentID int, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("appointment_id = ?", appointmentID).
		Update("notes", notes)
	if result.Error != nil {
		return domainRepo.NewFetchError("appointment notes update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
