package appointments

import "errors"

var (
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidState is returned when the appointment's status does not
	// allow the requested operation.
	ErrInvalidState = errors.New("appointment status does not allow this operation")

	// ErrInvalidTimeFormat is returned when a slot time is not a 24-hour
	// HH:MM string.
	ErrInvalidTimeFormat = errors.New("slot time must be in HH:MM 24-hour format")

	// ErrReasonRequired is returned when a manual priority override or a
	// reschedule carries no reason.
	ErrReasonRequired = errors.New("a non-empty reason is required")

	// ErrSlotTaken is returned when the requested slot is already held by
	// another appointment or is not a bookable slot for that day.
	ErrSlotTaken = errors.New("slot is not available")

	// ErrDoctorUnavailable is returned when the doctor's queue is marked
	// unavailable for the requested day.
	ErrDoctorUnavailable = errors.New("doctor is not accepting appointments for this day")

	// ErrNothingToOverride is returned when a priority override carries
	// neither a severity nor a risk score.
	ErrNothingToOverride = errors.New("override requires a severity or a risk score")

	// ErrInvalidOverride is returned when override values are out of
	// range.
	ErrInvalidOverride = errors.New("override values out of range")

	// ErrConflict is returned when exclusive ownership of the doctor's
	// day queue could not be acquired in time. Safe to retry from the
	// top of the operation.
	ErrConflict = errors.New("concurrent queue operation in progress, retry")
)
