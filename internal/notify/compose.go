// Package notify composes the patient-facing notification records the
// scheduler writes onto appointments, and hands finished events to the
// external delivery layer. Actual delivery (SMS, email, push) is out
// of scope for this core.
package notify

import (
	"fmt"
	"time"

	"github.com/clinicflow/scheduler/internal/appointments"
)

// RescheduleNotice describes a direct reschedule to the patient.
func RescheduleNotice(previousTime, newTime, reason string, now time.Time) *appointments.Notification {
	msg := fmt.Sprintf("Your appointment has been rescheduled from %s to %s.", previousTime, newTime)
	if reason != "" {
		msg += fmt.Sprintf(" Reason: %s.", reason)
	}
	return &appointments.Notification{
		Message:   msg,
		Type:      appointments.NotificationReschedule,
		CreatedAt: now,
	}
}

// ShiftNotice describes a cascade shift to the patient. Shifted
// patients did not ask for the change, so the message explains it.
func ShiftNotice(previousTime, newTime string, now time.Time) *appointments.Notification {
	return &appointments.Notification{
		Message: fmt.Sprintf(
			"Due to a schedule adjustment, your appointment has been moved from %s to %s. We apologize for any inconvenience.",
			previousTime, newTime,
		),
		Type:      appointments.NotificationShift,
		CreatedAt: now,
	}
}

// PriorityNotice tells the patient their place in the queue changed
// after a clinical review.
func PriorityNotice(newPosition int, now time.Time) *appointments.Notification {
	return &appointments.Notification{
		Message:   fmt.Sprintf("Following a clinical review, your queue position is now %d.", newPosition),
		Type:      appointments.NotificationPriority,
		CreatedAt: now,
	}
}
