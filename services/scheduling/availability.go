package scheduling

import (
	"time"

	"telecare/models"
)

// WithinAvailability reports whether the candidate time falls inside any of
// the doctor's published weekly windows for that weekday. Windows are
// half-open [startTime, endTime). A doctor with no published slots is
// unavailable for all times. Pure function; the caller decides whether the
// result gates booking or is advisory only.
func WithinAvailability(doctor *models.Doctor, t time.Time) bool {
	if doctor == nil || len(doctor.AvailableSlots) == 0 {
		return false
	}

	day := t.Weekday().String()[:3] // Mon..Sun tokens
	clock := t.Format("15:04")

	for _, slot := range doctor.AvailableSlots {
		if slot.Day != day {
			continue
		}
		// "HH:MM" strings compare correctly lexicographically.
		if clock >= slot.StartTime && clock < slot.EndTime {
			return true
		}
	}
	return false
}
