package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ryderthieu/hospital-management-sub003/internal/converter"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/dto"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"
	"github.com/ryderthieu/hospital-management-sub003/internal/usecase"
	"github.com/ryderthieu/hospital-management-sub003/pkg/response"
	"github.com/ryderthieu/hospital-management-sub003/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	queryUsecase usecase.AppointmentQueryUsecase
	validator    *validator.CustomValidator
}

func NewAppointmentHandler(queryUsecase usecase.AppointmentQueryUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		queryUsecase: queryUsecase,
		validator:    validator,
	}
}

// ListAppointments returns one refined appointment page for a doctor. Server
// parameters (workDate, status, shift, roomId) narrow the fetch; the rest are
// applied to the returned page.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := resolveDoctorID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := dto.AppointmentListRequest{
		Page:       parseIntOrDefault(query.Get("page"), 0),
		Size:       parseIntOrDefault(query.Get("size"), 10),
		Date:       query.Get("date"),
		WorkDate:   query.Get("workDate"),
		Status:     query.Get("status"),
		Shift:      query.Get("shift"),
		RoomID:     parseIntOrDefault(query.Get("roomId"), 0),
		Gender:     query.Get("gender"),
		SearchTerm: query.Get("search"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	filter := entity.AppointmentFilter{
		Date:       req.Date,
		WorkDate:   req.WorkDate,
		Status:     req.Status,
		Shift:      req.Shift,
		RoomID:     req.RoomID,
		Gender:     req.Gender,
		SearchTerm: req.SearchTerm,
	}

	view, err := h.queryUsecase.GetAppointmentPage(r.Context(), doctorID, filter, req.Page, req.Size)
	if err != nil {
		switch {
		case err == usecase.ErrInvalidFilterDate:
			response.BadRequest(w, "Invalid date filter, use YYYY-MM-DD")
		case repository.IsFetchError(err):
			response.Error(w, http.StatusBadGateway, "Failed to reach appointment source", nil)
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	meta := &response.Meta{
		PageNo:        view.Page.PageNo,
		PageSize:      view.Page.PageSize,
		TotalElements: view.Page.TotalElements,
		TotalPages:    view.Page.TotalPages,
		Last:          view.Page.Last,
		VisibleCount:  view.VisibleCount,
	}
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", converter.PageViewToResponse(view), meta)
}

// UpdateStatus moves an appointment along its lifecycle. Unknown statuses and
// transitions the lifecycle does not allow are rejected before the source is
// asked to persist anything.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.queryUsecase.UpdateStatus(r.Context(), appointmentID, entity.AppointmentStatus(req.Status))
	if err != nil {
		switch {
		case err == usecase.ErrUnknownStatus:
			response.BadRequest(w, "Unknown appointment status")
		case err == usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case err == usecase.ErrIllegalTransition:
			response.Conflict(w, "Status transition not allowed")
		case repository.IsFetchError(err):
			response.Error(w, http.StatusBadGateway, "Failed to reach appointment source", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", nil)
}

// UpdateNotes replaces the doctor's notes on an appointment.
func (h *AppointmentHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.queryUsecase.UpdateNotes(r.Context(), appointmentID, req.Notes)
	if err != nil {
		switch {
		case err == usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case repository.IsFetchError(err):
			response.Error(w, http.StatusBadGateway, "Failed to reach appointment source", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment notes")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment notes updated successfully", nil)
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
