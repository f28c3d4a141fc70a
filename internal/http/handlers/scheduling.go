// Package handlers contains the HTTP handlers for the scheduling API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicflow/scheduler/internal/appointments"
	"github.com/clinicflow/scheduler/internal/scheduler"
	"github.com/clinicflow/scheduler/internal/triage"
	"github.com/clinicflow/scheduler/pkg/logging"
)

// SchedulingHandler exposes the scheduling service over HTTP.
type SchedulingHandler struct {
	svc    *scheduler.Service
	logger *logging.Logger
	now    func() time.Time
}

// NewSchedulingHandler creates a new scheduling handler.
func NewSchedulingHandler(svc *scheduler.Service, logger *logging.Logger) *SchedulingHandler {
	if svc == nil {
		panic("handlers: scheduler service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SchedulingHandler{svc: svc, logger: logger, now: time.Now}
}

// HealthCheck reports service liveness.
func (h *SchedulingHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// BookAppointment handles POST /api/appointments.
func (h *SchedulingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req scheduler.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	appt, err := h.svc.Book(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// GetAvailableSlots handles GET /api/doctors/{doctorID}/slots?date=YYYY-MM-DD.
// When the date is today, slots that already started are filtered out.
func (h *SchedulingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date query parameter is required"))
		return
	}

	slots, err := h.svc.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	now := h.now()
	if date == now.Format("2006-01-02") {
		slots = scheduler.FilterPastSlots(slots, now)
	}
	if slots == nil {
		slots = []scheduler.Slot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doctor_id": doctorID,
		"date":      date,
		"slots":     slots,
	})
}

// GetQueue handles GET /api/doctors/{doctorID}/queue?date=YYYY-MM-DD.
func (h *SchedulingHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date query parameter is required"))
		return
	}

	q, active, err := h.svc.GetQueue(r.Context(), doctorID, date)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if active == nil {
		active = []*appointments.Appointment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"queue":        q,
		"appointments": active,
	})
}

type rescheduleRequest struct {
	NewSlotTime string `json:"new_slot_time"`
	Reason      string `json:"reason"`
}

// RescheduleAppointment handles POST /api/appointments/{appointmentID}/reschedule.
func (h *SchedulingHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	appt, shifted, err := h.svc.Reschedule(r.Context(), appointmentID, req.NewSlotTime, req.Reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"appointment":   appt,
		"shifted_count": shifted,
	})
}

type overrideRequest struct {
	Severity  *string `json:"severity,omitempty"`
	RiskScore *int    `json:"risk_score,omitempty"`
	Reason    string  `json:"reason"`
}

// OverridePriority handles POST /api/appointments/{appointmentID}/priority.
func (h *SchedulingHandler) OverridePriority(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	var severity *triage.Severity
	if req.Severity != nil {
		s := triage.Severity(*req.Severity)
		severity = &s
	}

	appt, err := h.svc.OverridePriority(r.Context(), appointmentID, severity, req.RiskScore, req.Reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/appointments/{appointmentID}/status.
func (h *SchedulingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	appt, err := h.svc.UpdateStatus(r.Context(), appointmentID, appointments.Status(req.Status))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// writeServiceError maps service errors onto HTTP status codes.
// Conflicts (lock timeouts, taken slots, invalid transitions) are 409
// so clients can retry or refresh; validation problems are 400.
func (h *SchedulingHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, appointments.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appointments.ErrConflict),
		errors.Is(err, appointments.ErrSlotTaken),
		errors.Is(err, appointments.ErrInvalidState),
		errors.Is(err, appointments.ErrDoctorUnavailable):
		status = http.StatusConflict
	case errors.Is(err, scheduler.ErrValidation),
		errors.Is(err, appointments.ErrInvalidTimeFormat),
		errors.Is(err, appointments.ErrReasonRequired),
		errors.Is(err, appointments.ErrNothingToOverride),
		errors.Is(err, appointments.ErrInvalidOverride):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		h.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	if status == http.StatusInternalServerError {
		writeJSON(w, status, errorBody("internal error"))
		return
	}
	writeJSON(w, status, errorBody(err.Error()))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
