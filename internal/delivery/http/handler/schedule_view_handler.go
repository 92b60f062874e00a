package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/converter"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/dto"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/http/middleware"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/usecase"
	"github.com/ryderthieu/hospital-management-sub003/pkg/response"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"
	"github.com/ryderthieu/hospital-management-sub003/pkg/validator"

	"github.com/gorilla/mux"
)

type ScheduleViewHandler struct {
	registry  *usecase.ViewEngineRegistry
	validator *validator.CustomValidator
}

func NewScheduleViewHandler(registry *usecase.ViewEngineRegistry, validator *validator.CustomValidator) *ScheduleViewHandler {
	return &ScheduleViewHandler{
		registry:  registry,
		validator: validator,
	}
}

// resolveDoctorID parses the path doctor id and checks it against the
// authenticated doctor. A doctor can only view their own calendar.
func resolveDoctorID(w http.ResponseWriter, r *http.Request) (int, bool) {
	doctorID, err := strconv.Atoi(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return 0, false
	}

	authDoctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok || authDoctorID != doctorID {
		response.Error(w, http.StatusForbidden, "Access to this doctor's data is not allowed", nil)
		return 0, false
	}

	return doctorID, true
}

// GetCalendarView returns the calendar grid, workload totals, and the current
// appointment page for one doctor. Optional query parameters switch the view
// mode, jump the reference date, and select a day.
func (h *ScheduleViewHandler) GetCalendarView(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	req := dto.CalendarViewRequest{
		View:        r.URL.Query().Get("view"),
		Date:        r.URL.Query().Get("date"),
		SelectedDay: r.URL.Query().Get("selected"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	engine := h.registry.Engine(doctorID)
	if req.View != "" {
		engine.SetViewMode(r.Context(), entity.ViewMode(req.View))
	}
	if req.Date != "" {
		date, _ := time.Parse(timeutil.DateLayout, req.Date)
		engine.SetReference(r.Context(), date)
	}
	if req.SelectedDay != "" {
		day, _ := time.Parse(timeutil.DateLayout, req.SelectedDay)
		engine.SelectDay(day)
	}

	snap := engine.Load(r.Context())
	response.Success(w, http.StatusOK, "Calendar view retrieved successfully", converter.SnapshotToResponse(snap))
}

// RefreshCalendarView bypasses the cache and refetches both collections.
func (h *ScheduleViewHandler) RefreshCalendarView(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	snap := h.registry.Engine(doctorID).Refresh(r.Context())
	response.Success(w, http.StatusOK, "Calendar view refreshed successfully", converter.SnapshotToResponse(snap))
}

// PreviousPeriod moves the calendar back one month or one week depending on
// the current view mode.
func (h *ScheduleViewHandler) PreviousPeriod(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	snap := h.registry.Engine(doctorID).PreviousPeriod(r.Context())
	response.Success(w, http.StatusOK, "Calendar view updated successfully", converter.SnapshotToResponse(snap))
}

// NextPeriod moves the calendar forward one period.
func (h *ScheduleViewHandler) NextPeriod(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	snap := h.registry.Engine(doctorID).NextPeriod(r.Context())
	response.Success(w, http.StatusOK, "Calendar view updated successfully", converter.SnapshotToResponse(snap))
}

// ClearSelectedDay drops the day selection from the view.
func (h *ScheduleViewHandler) ClearSelectedDay(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	snap := h.registry.Engine(doctorID).ClearSelectedDay()
	response.Success(w, http.StatusOK, "Day selection cleared", converter.SnapshotToResponse(snap))
}
