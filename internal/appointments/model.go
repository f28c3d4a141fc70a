// Package appointments defines the appointment entity and its
// persistence contract. An appointment is one patient's booked
// encounter with one doctor in a fixed-length slot.
package appointments

import (
	"time"

	"github.com/clinicflow/scheduler/internal/triage"
)

// Status is the lifecycle state of an appointment. Cancellation is a
// status value, never a row deletion. Transition validity is enforced
// at the service boundary, not by the entity.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Active reports whether the appointment still competes for queue
// positions. Completed, cancelled and no-show appointments keep their
// rows but leave the queue.
func (s Status) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// HoldsSlot reports whether the appointment still occupies its time
// slot for availability purposes. Completed visits keep their slot in
// the past; only cancellations and no-shows free it.
func (s Status) HoldsSlot() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// Reschedulable reports whether the appointment may be moved to a new
// time.
func (s Status) Reschedulable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// RescheduleRecord snapshots where an appointment was moved from. Only
// the most recent reschedule is retained per appointment.
type RescheduleRecord struct {
	PreviousTime    string    `json:"previous_time"`
	PreviousEndTime string    `json:"previous_end_time"`
	RescheduledAt   time.Time `json:"rescheduled_at"`
	Reason          string    `json:"reason"`
}

// Notification is the single patient-facing message attached to an
// appointment. Each new reschedule overwrites it; delivery is handled
// by an external mechanism that reads this field.
type Notification struct {
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Notification types written by the scheduler.
const (
	NotificationReschedule = "reschedule"
	NotificationShift      = "queue-shift"
	NotificationPriority   = "priority-change"
)

// Appointment is one booked encounter. SlotDate is a calendar day
// ("2006-01-02"); SlotTime and SlotEndTime are clock times ("15:04")
// with a fixed slot duration between them. QueuePosition is 1-based
// and only ever written by the reorder algorithm.
type Appointment struct {
	ID            string   `json:"id"`
	PatientID     string   `json:"patient_id"`
	DoctorID      string   `json:"doctor_id"`
	SlotDate      string   `json:"slot_date"`
	SlotTime      string   `json:"slot_time"`
	SlotEndTime   string   `json:"slot_end_time"`
	QueuePosition int      `json:"queue_position"`
	HealthProblem string   `json:"health_problem"`
	Symptoms      []string `json:"symptoms,omitempty"`

	Severity  triage.Severity `json:"severity"`
	RiskScore int             `json:"risk_score"`
	Analysis  triage.Analysis `json:"ai_analysis"`

	Status          Status            `json:"status"`
	RescheduledFrom *RescheduleRecord `json:"rescheduled_from,omitempty"`
	Notification    *Notification     `json:"notification,omitempty"`

	BookedAt  time.Time `json:"booked_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate freely without
// aliasing repository state.
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Symptoms != nil {
		cp.Symptoms = append([]string(nil), a.Symptoms...)
	}
	cp.Analysis.DetectedConditions = append([]string(nil), a.Analysis.DetectedConditions...)
	cp.Analysis.UrgencyIndicators = append([]string(nil), a.Analysis.UrgencyIndicators...)
	if a.RescheduledFrom != nil {
		r := *a.RescheduledFrom
		cp.RescheduledFrom = &r
	}
	if a.Notification != nil {
		n := *a.Notification
		cp.Notification = &n
	}
	return &cp
}
