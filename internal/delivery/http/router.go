package http

import (
	"net/http"

	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/http/handler"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	scheduleHandler    *handler.ScheduleViewHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	scheduleHandler *handler.ScheduleViewHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor dashboard routes (protected)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("/{doctorId}/calendar", r.scheduleHandler.GetCalendarView).Methods(http.MethodGet)
	doctors.HandleFunc("/{doctorId}/calendar/refresh", r.scheduleHandler.RefreshCalendarView).Methods(http.MethodPost)
	doctors.HandleFunc("/{doctorId}/calendar/previous", r.scheduleHandler.PreviousPeriod).Methods(http.MethodPost)
	doctors.HandleFunc("/{doctorId}/calendar/next", r.scheduleHandler.NextPeriod).Methods(http.MethodPost)
	doctors.HandleFunc("/{doctorId}/calendar/selected", r.scheduleHandler.ClearSelectedDay).Methods(http.MethodDelete)
	doctors.HandleFunc("/{doctorId}/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)

	// Appointment mutations (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/notes", r.appointmentHandler.UpdateNotes).Methods(http.MethodPatch)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
