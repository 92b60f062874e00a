package repository

import (
	"context"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
)

// DirectorySource performs the optional doctor/room enrichment lookups.
// Failures here must never abort a view build; callers substitute a
// placeholder and keep going.
type DirectorySource interface {
	FetchDoctorInfo(ctx context.Context, doctorID int) (*entity.DoctorInfo, error)
	FetchRoomInfo(ctx context.Context, roomID int) (*entity.RoomInfo, error)
}
