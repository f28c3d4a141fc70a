// Package queue holds the per-(doctor, day) queue aggregate: working
// hours, availability, a derived stats snapshot and the append-only
// prioritization log.
package queue

import (
	"time"

	"github.com/clinicflow/scheduler/internal/appointments"
)

// Action classifies a prioritization log entry.
type Action string

const (
	ActionReorder   Action = "reorder"
	ActionEscalate  Action = "escalate"
	ActionDowngrade Action = "downgrade"
)

// PrioritizationEntry records one queue-position change. The log is
// append-only; retention and trimming are an external policy.
type PrioritizationEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	Action           Action    `json:"action"`
	AppointmentID    string    `json:"appointment_id"`
	PreviousPosition int       `json:"previous_position"`
	NewPosition      int       `json:"new_position"`
	Reason           string    `json:"reason"`
}

// Stats is a derived snapshot of the day's appointment set. It is a
// materialized view recomputed alongside every mutation that changes
// counts and is never authoritative for ordering decisions.
type Stats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	BySeverity  map[string]int `json:"by_severity"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Break is a window within working hours when the doctor is not seeing
// patients.
type Break struct {
	Start string `json:"start"` // "13:00"
	End   string `json:"end"`   // "13:30"
}

// DoctorQueue is the scheduling state for one doctor on one calendar
// day. At most one exists per (doctor, date); it is created lazily on
// first access.
type DoctorQueue struct {
	DoctorID            string  `json:"doctor_id"`
	Date                string  `json:"date"`
	WorkingHoursStart   string  `json:"working_hours_start"`
	WorkingHoursEnd     string  `json:"working_hours_end"`
	SlotDurationMinutes int     `json:"slot_duration_minutes"`
	Breaks              []Break `json:"breaks,omitempty"`
	IsAvailable         bool    `json:"is_available"`

	// CurrentPatient points at the in-progress appointment, at most one.
	CurrentPatient string `json:"current_patient,omitempty"`

	Stats             Stats                 `json:"stats"`
	PrioritizationLog []PrioritizationEntry `json:"prioritization_log,omitempty"`
}

// AppendLog adds an entry to the prioritization log.
func (q *DoctorQueue) AppendLog(entry PrioritizationEntry) {
	q.PrioritizationLog = append(q.PrioritizationLog, entry)
}

// ComputeStats rebuilds the stats snapshot from the full appointment
// set for the queue's day.
func ComputeStats(appts []*appointments.Appointment, now time.Time) Stats {
	stats := Stats{
		ByStatus:    make(map[string]int),
		BySeverity:  make(map[string]int),
		LastUpdated: now,
	}
	for _, appt := range appts {
		stats.Total++
		stats.ByStatus[string(appt.Status)]++
		stats.BySeverity[string(appt.Severity)]++
	}
	return stats
}
