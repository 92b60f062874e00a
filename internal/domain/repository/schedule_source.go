package repository

import (
	"context"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
)

// ScheduleSource fetches a doctor's raw work shifts. The transport behind it
// (database, remote API) is an external concern; the view engine only sees
// this contract.
type ScheduleSource interface {
	FetchSchedules(ctx context.Context, doctorID int) ([]entity.Schedule, error)
}
