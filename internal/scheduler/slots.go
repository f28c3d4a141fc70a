package scheduler

import (
	"time"

	"github.com/clinicflow/scheduler/internal/appointments"
	"github.com/clinicflow/scheduler/internal/queue"
)

// Slot is one bookable window within working hours.
type Slot struct {
	SlotTime    string `json:"slot_time"`
	SlotEndTime string `json:"slot_end_time"`
}

// buildDaySlots generates every slot between the queue's working-hours
// start (inclusive) and end (exclusive), skipping slots that overlap a
// configured break.
func buildDaySlots(q *queue.DoctorQueue) ([]Slot, error) {
	start, err := parseClock(q.WorkingHoursStart)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(q.WorkingHoursEnd)
	if err != nil {
		return nil, err
	}
	dur := q.SlotDurationMinutes
	if dur <= 0 {
		dur = 15
	}

	var slots []Slot
	for at := start; at+dur <= end; at += dur {
		if overlapsBreak(q.Breaks, at, at+dur) {
			continue
		}
		slots = append(slots, Slot{
			SlotTime:    formatClock(at),
			SlotEndTime: formatClock(at + dur),
		})
	}
	return slots, nil
}

func overlapsBreak(breaks []queue.Break, start, end int) bool {
	for _, b := range breaks {
		bStart, err := parseClock(b.Start)
		if err != nil {
			continue
		}
		bEnd, err := parseClock(b.End)
		if err != nil {
			continue
		}
		if start < bEnd && end > bStart {
			return true
		}
	}
	return false
}

// availableFrom removes slots held by appointments that still occupy
// their time (anything not cancelled or no-show).
func availableFrom(slots []Slot, appts []*appointments.Appointment) []Slot {
	taken := make(map[string]struct{})
	for _, appt := range appts {
		if appt.Status.HoldsSlot() {
			taken[appt.SlotTime] = struct{}{}
		}
	}
	var out []Slot
	for _, s := range slots {
		if _, ok := taken[s.SlotTime]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// FilterPastSlots drops slots whose start has already passed. A slot
// starting exactly now has not passed and is kept. This is a
// presentation concern for "today" views, layered on top of the
// allocator rather than part of its contract, so handlers call it
// explicitly.
func FilterPastSlots(slots []Slot, now time.Time) []Slot {
	nowMinutes := now.Hour()*60 + now.Minute()
	var out []Slot
	for _, s := range slots {
		at, err := parseClock(s.SlotTime)
		if err != nil {
			continue
		}
		if at >= nowMinutes {
			out = append(out, s)
		}
	}
	return out
}
