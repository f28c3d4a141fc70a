package scheduler

import (
	"sort"

	"github.com/clinicflow/scheduler/internal/appointments"
)

// orderActive returns the active subset of appts in queue order:
// higher risk score first, then higher severity tier (authoritative
// when scores are tied or have been overridden independently), then
// earlier booking time. The sort is stable so repeated invocations on
// an unchanged set produce identical output.
func orderActive(appts []*appointments.Appointment) []*appointments.Appointment {
	var active []*appointments.Appointment
	for _, appt := range appts {
		if appt.Status.Active() {
			active = append(active, appt)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		return a.BookedAt.Before(b.BookedAt)
	})
	return active
}

// sortByMins orders appointments by their slot's minutes-from-midnight,
// looked up by appointment ID.
func sortByMins(appts []*appointments.Appointment, mins map[string]int) {
	sort.Slice(appts, func(i, j int) bool {
		return mins[appts[i].ID] < mins[appts[j].ID]
	})
}
