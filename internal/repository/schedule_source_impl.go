package repository

import (
	"context"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	domainRepo "github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleSource struct {
	db *gorm.DB
}

func NewScheduleSource(db *gorm.DB) domainRepo.ScheduleSource {
	return &scheduleSource{db: db}
}

func (r *scheduleSource) FetchSchedules(ctx context.Context, doctorID int) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("work_date ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, domainRepo.NewFetchError("schedules", err)
	}
	return schedules, nil
}
