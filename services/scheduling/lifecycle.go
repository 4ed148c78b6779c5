package scheduling

import "telecare/models"

// CanTransition reports whether the status lifecycle permits moving from one
// state to another. The graph is monotonic: scheduled may start (ongoing) or
// be cancelled; ongoing may complete or be cancelled; completed and
// cancelled are terminal. Payment linkage is orthogonal to status and is not
// governed here.
func CanTransition(from, to models.AppointmentStatus) bool {
	switch from {
	case models.StatusScheduled:
		return to == models.StatusOngoing || to == models.StatusCancelled
	case models.StatusOngoing:
		return to == models.StatusCompleted || to == models.StatusCancelled
	default:
		return false
	}
}

// Transition applies a validated status change to the appointment.
func Transition(appt *models.Appointment, to models.AppointmentStatus) error {
	if !CanTransition(appt.Status, to) {
		return &InvalidTransitionError{From: appt.Status, Op: "transition to " + string(to)}
	}
	appt.Status = to
	return nil
}
