// Package events defines the canonical event payloads the scheduler
// emits after mutating state, plus the transactional outbox used to
// hand them to an external delivery layer.
package events

import (
	"context"
	"time"
)

// Canonical event type names. Versioned so consumers can migrate.
const (
	TypeAppointmentBooked      = "appointment.booked.v1"
	TypeAppointmentRescheduled = "appointment.rescheduled.v1"
	TypeAppointmentStatus      = "appointment.status_changed.v1"
	TypeQueueReordered         = "queue.reordered.v1"
	TypePriorityOverridden     = "priority.overridden.v1"
)

// Sink accepts events for eventual delivery. The scheduler core only
// publishes; transport and retries live behind this interface.
type Sink interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// AppointmentBookedV1 is emitted after a booking persists.
type AppointmentBookedV1 struct {
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	SlotDate      string    `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
	Severity      string    `json:"severity"`
	RiskScore     int       `json:"risk_score"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AppointmentRescheduledV1 is emitted once per reschedule call,
// covering the moved appointment and the cascade it triggered.
type AppointmentRescheduledV1 struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	SlotDate      string    `json:"slot_date"`
	PreviousTime  string    `json:"previous_time"`
	NewTime       string    `json:"new_time"`
	Reason        string    `json:"reason"`
	ShiftedCount  int       `json:"shifted_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AppointmentStatusChangedV1 is emitted on status transitions.
type AppointmentStatusChangedV1 struct {
	AppointmentID  string    `json:"appointment_id"`
	DoctorID       string    `json:"doctor_id"`
	SlotDate       string    `json:"slot_date"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// QueueReorderedV1 is emitted after queue positions are recomputed.
type QueueReorderedV1 struct {
	DoctorID   string    `json:"doctor_id"`
	SlotDate   string    `json:"slot_date"`
	QueueSize  int       `json:"queue_size"`
	Changed    int       `json:"changed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PriorityOverriddenV1 is emitted after a manual severity/risk edit.
type PriorityOverriddenV1 struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	SlotDate      string    `json:"slot_date"`
	Action        string    `json:"action"` // escalate or downgrade
	Severity      string    `json:"severity"`
	RiskScore     int       `json:"risk_score"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}
