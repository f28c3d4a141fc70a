package scheduler

import (
	"fmt"
	"regexp"

	"github.com/clinicflow/scheduler/internal/appointments"
)

// clockPattern matches 24-hour HH:MM strings, the only time-of-day
// representation this subsystem accepts.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// datePattern matches ISO calendar dates. Time-of-day on a slot date
// is ignored by contract, so only the day is ever encoded.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", appointments.ErrInvalidTimeFormat, s)
	}
	hours := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	minutes := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return hours*60 + minutes, nil
}

// formatClock converts minutes from midnight back to "HH:MM". Minute
// overflow rolls the hour naturally.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func validDate(s string) bool {
	return datePattern.MatchString(s)
}
