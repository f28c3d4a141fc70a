package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/clinicflow/scheduler/internal/appointments"
	"github.com/clinicflow/scheduler/internal/queue"
	"github.com/clinicflow/scheduler/internal/scheduler"
	"github.com/clinicflow/scheduler/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := scheduler.NewService(
		appointments.NewInMemoryRepository(),
		queue.NewStore(client, queue.Defaults{}),
		nil,
		logging.Default(),
	)
	h := NewSchedulingHandler(svc, logging.Default())

	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Post("/api/appointments", h.BookAppointment)
	r.Post("/api/appointments/{appointmentID}/reschedule", h.RescheduleAppointment)
	r.Post("/api/appointments/{appointmentID}/priority", h.OverridePriority)
	r.Patch("/api/appointments/{appointmentID}/status", h.UpdateStatus)
	r.Get("/api/doctors/{doctorID}/slots", h.GetAvailableSlots)
	r.Get("/api/doctors/{doctorID}/queue", h.GetQueue)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bookJSON(t *testing.T, router http.Handler, slotTime, problem string) appointments.Appointment {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]any{
		"patient_id":     "patient-" + slotTime,
		"doctor_id":      "doc-1",
		"slot_date":      "2026-03-10",
		"slot_time":      slotTime,
		"health_problem": problem,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("book status = %d, body %s", rec.Code, rec.Body.String())
	}
	var appt appointments.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	return appt
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBookAppointmentEndpoint(t *testing.T) {
	router := newTestRouter(t)

	appt := bookJSON(t, router, "09:00", "severe chest pain")
	if appt.ID == "" {
		t.Error("expected a generated id")
	}
	if appt.QueuePosition != 1 {
		t.Errorf("queue_position = %d, want 1", appt.QueuePosition)
	}
	if string(appt.Severity) != "critical" {
		t.Errorf("severity = %s, want critical", appt.Severity)
	}
	if appt.SlotEndTime != "09:15" {
		t.Errorf("slot_end_time = %s, want 09:15", appt.SlotEndTime)
	}
}

func TestBookAppointmentInvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookAppointmentValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]any{
		"doctor_id":      "doc-1",
		"slot_date":      "2026-03-10",
		"slot_time":      "09:00",
		"health_problem": "cold",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	router := newTestRouter(t)

	bookJSON(t, router, "09:00", "cold")
	rec := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]any{
		"patient_id":     "patient-2",
		"doctor_id":      "doc-1",
		"slot_date":      "2026-03-10",
		"slot_time":      "09:00",
		"health_problem": "cold",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetAvailableSlotsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/doctors/doc-1/slots", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/doctors/doc-1/slots?date=2026-03-10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		DoctorID string           `json:"doctor_id"`
		Date     string           `json:"date"`
		Slots    []scheduler.Slot `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != 48 {
		t.Fatalf("slots = %d, want 48", len(resp.Slots))
	}

	bookJSON(t, router, "09:00", "cold")
	rec = doJSON(t, router, http.MethodGet, "/api/doctors/doc-1/slots?date=2026-03-10", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != 47 {
		t.Errorf("slots after booking = %d, want 47", len(resp.Slots))
	}
	for _, s := range resp.Slots {
		if s.SlotTime == "09:00" {
			t.Error("booked slot still listed as available")
		}
	}
}

func TestGetQueueEndpoint(t *testing.T) {
	router := newTestRouter(t)

	routine := bookJSON(t, router, "09:00", "mild rash")
	urgent := bookJSON(t, router, "09:15", "severe chest pain")

	rec := doJSON(t, router, http.MethodGet, "/api/doctors/doc-1/queue?date=2026-03-10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Queue        queue.DoctorQueue          `json:"queue"`
		Appointments []appointments.Appointment `json:"appointments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Fatalf("appointments = %d, want 2", len(resp.Appointments))
	}
	if resp.Appointments[0].ID != urgent.ID || resp.Appointments[1].ID != routine.ID {
		t.Error("queue not ordered by urgency")
	}
	if resp.Queue.Stats.Total != 2 {
		t.Errorf("stats total = %d, want 2", resp.Queue.Stats.Total)
	}
}

func TestRescheduleEndpoint(t *testing.T) {
	router := newTestRouter(t)

	a := bookJSON(t, router, "09:00", "cold")
	bookJSON(t, router, "09:15", "cold")

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/appointments/%s/reschedule", a.ID),
		map[string]any{"new_slot_time": "12:00", "reason": "doctor delayed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Appointment  appointments.Appointment `json:"appointment"`
		ShiftedCount int                      `json:"shifted_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Appointment.SlotTime != "12:00" {
		t.Errorf("slot_time = %s, want 12:00", resp.Appointment.SlotTime)
	}
	if resp.ShiftedCount != 1 {
		t.Errorf("shifted_count = %d, want 1", resp.ShiftedCount)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/appointments/missing/reschedule",
		map[string]any{"new_slot_time": "13:00", "reason": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/appointments/%s/reschedule", a.ID),
		map[string]any{"new_slot_time": "noon", "reason": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad time: status = %d, want 400", rec.Code)
	}
}

func TestOverridePriorityEndpoint(t *testing.T) {
	router := newTestRouter(t)

	bookJSON(t, router, "09:00", "severe chest pain")
	a := bookJSON(t, router, "09:15", "mild rash")

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/appointments/%s/priority", a.ID),
		map[string]any{"risk_score": 95, "reason": "patient deteriorating"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var appt appointments.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if appt.RiskScore != 95 {
		t.Errorf("risk_score = %d, want 95", appt.RiskScore)
	}
	if appt.QueuePosition != 1 {
		t.Errorf("queue_position = %d, want 1", appt.QueuePosition)
	}

	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/appointments/%s/priority", a.ID),
		map[string]any{"reason": "nothing changes"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty override: status = %d, want 400", rec.Code)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)

	a := bookJSON(t, router, "09:00", "cold")

	rec := doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/appointments/%s/status", a.ID),
		map[string]any{"status": "confirmed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var appt appointments.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if appt.Status != appointments.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", appt.Status)
	}

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/appointments/%s/status", a.ID),
		map[string]any{"status": "done"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: status = %d, want 400", rec.Code)
	}
}
