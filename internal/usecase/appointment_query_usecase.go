package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrUnknownStatus       = errors.New("unknown appointment status")
	ErrIllegalTransition   = errors.New("illegal appointment status transition")
	ErrInvalidFilterDate   = errors.New("invalid filter date format, use YYYY-MM-DD")
)

const unknownDoctorPlaceholder = "Unknown doctor"

// AppointmentPageView is one server page after client-side refinement.
// VisibleCount is computed from the refined set, never from the server's
// TotalElements: the refinement stage only narrows the fetched page.
type AppointmentPageView struct {
	Page         entity.Page[entity.Appointment]
	Refined      []entity.Appointment
	Stats        entity.AppointmentStats
	VisibleCount int
	DoctorName   string
}

type AppointmentQueryUsecase interface {
	GetAppointmentPage(ctx context.Context, doctorID int, filter entity.AppointmentFilter, page, size int) (*AppointmentPageView, error)
	UpdateStatus(ctx context.Context, appointmentID int, status entity.AppointmentStatus) error
	UpdateNotes(ctx context.Context, appointmentID int, notes string) error
}

type appointmentQueryUsecase struct {
	log          *logrus.Logger
	appointments repository.AppointmentSource
	directory    repository.DirectorySource
}

func NewAppointmentQueryUsecase(
	log *logrus.Logger,
	appointments repository.AppointmentSource,
	directory repository.DirectorySource,
) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		log:          log,
		appointments: appointments,
		directory:    directory,
	}
}

// GetAppointmentPage runs the two-stage filter pipeline: the
// server-resolvable options travel to the data source as query parameters,
// the rest refine the returned page locally.
func (u *appointmentQueryUsecase) GetAppointmentPage(ctx context.Context, doctorID int, filter entity.AppointmentFilter, page, size int) (*AppointmentPageView, error) {
	if err := validateFilterDates(filter); err != nil {
		return nil, err
	}

	result, err := u.appointments.FetchAppointmentPage(ctx, doctorID, filter.QueryParams(page, size))
	if err != nil {
		u.log.Warnf("Failed to fetch appointment page for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	SortAppointmentsByTime(result.Content)
	refined := RefineAppointments(result.Content, filter)

	view := &AppointmentPageView{
		Page:         result,
		Refined:      refined,
		Stats:        CalculateStats(refined),
		VisibleCount: len(refined),
		DoctorName:   u.doctorName(ctx, doctorID),
	}
	return view, nil
}

// doctorName is an enrichment lookup; failures are logged and replaced with
// a placeholder, never propagated.
func (u *appointmentQueryUsecase) doctorName(ctx context.Context, doctorID int) string {
	info, err := u.directory.FetchDoctorInfo(ctx, doctorID)
	if err != nil || info == nil {
		if err != nil {
			u.log.Warnf("Failed to fetch doctor info for %d: %+v", doctorID, err)
		}
		return unknownDoctorPlaceholder
	}
	return info.FullName
}

// UpdateStatus validates the transition against the lifecycle before calling
// the external source. The server remains the authority; local validation
// just rejects requests that could never succeed.
func (u *appointmentQueryUsecase) UpdateStatus(ctx context.Context, appointmentID int, status entity.AppointmentStatus) error {
	if !status.Known() {
		return ErrUnknownStatus
	}

	current, err := u.appointments.FetchAppointment(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to fetch appointment %d: %+v", appointmentID, err)
		return err
	}
	if current == nil {
		return ErrAppointmentNotFound
	}
	if !current.AppointmentStatus.CanTransitionTo(status) {
		return ErrIllegalTransition
	}

	if err := u.appointments.UpdateAppointmentStatus(ctx, appointmentID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to update status of appointment %d: %+v", appointmentID, err)
		return err
	}
	return nil
}

func (u *appointmentQueryUsecase) UpdateNotes(ctx context.Context, appointmentID int, notes string) error {
	if err := u.appointments.UpdateAppointmentNotes(ctx, appointmentID, notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to update notes of appointment %d: %+v", appointmentID, err)
		return err
	}
	return nil
}

func validateFilterDates(f entity.AppointmentFilter) error {
	for _, value := range []string{f.Date, f.WorkDate} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(timeutil.DateLayout, value); err != nil {
			return ErrInvalidFilterDate
		}
	}
	return nil
}

// RefineAppointments applies the client-only filter stage to an already
// fetched page: single-day date, gender, and free-text search. It never
// spans server pages, so the result can only narrow what was fetched.
func RefineAppointments(items []entity.Appointment, f entity.AppointmentFilter) []entity.Appointment {
	refined := make([]entity.Appointment, 0, len(items))
	for _, a := range items {
		if f.Date != "" && a.WorkDate.Format(timeutil.DateLayout) != f.Date {
			continue
		}
		// Gender check is skipped entirely when patient info is absent.
		if f.Gender != "" && f.Gender != "all" && a.Patient != nil && string(a.Patient.Gender) != f.Gender {
			continue
		}
		if f.SearchTerm != "" && !matchesSearch(a, f.SearchTerm) {
			continue
		}
		refined = append(refined, a)
	}
	return refined
}

// matchesSearch reports whether the search term appears, case-insensitively,
// in the symptoms or the patient's full name. With neither field present the
// item cannot match.
func matchesSearch(a entity.Appointment, term string) bool {
	needle := strings.ToLower(term)
	if a.Symptoms != "" && strings.Contains(strings.ToLower(a.Symptoms), needle) {
		return true
	}
	if a.Patient != nil && a.Patient.FullName != "" &&
		strings.Contains(strings.ToLower(a.Patient.FullName), needle) {
		return true
	}
	return false
}

// CalculateStats builds the status histogram in a single pass over the
// refined set. Statuses outside the lifecycle count toward Total only.
func CalculateStats(items []entity.Appointment) entity.AppointmentStats {
	var stats entity.AppointmentStats
	for _, a := range items {
		stats.Total++
		switch a.AppointmentStatus {
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusConfirmed:
			stats.Confirmed++
		case entity.StatusInProgress:
			stats.InProgress++
		case entity.StatusPendingTestResult:
			stats.PendingTestResult++
		case entity.StatusCompleted:
			stats.Completed++
		case entity.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// SortAppointmentsByTime orders appointments by work date, then slot start.
func SortAppointmentsByTime(items []entity.Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].WorkDate.Equal(items[j].WorkDate) {
			return items[i].WorkDate.Before(items[j].WorkDate)
		}
		return items[i].SlotStart < items[j].SlotStart
	})
}
