package scheduling

import (
	"fmt"
	"time"

	"telecare/models"
)

// NotFoundError signals that a referenced doctor, user, or appointment does
// not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError signals that the exact (doctor, scheduleTime) slot is
// already held by a non-cancelled appointment.
type ConflictError struct {
	DoctorID     string
	ScheduleTime time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("this time slot is already booked for doctor %s", e.DoctorID)
}

// InvalidTransitionError signals a lifecycle operation that is not permitted
// from the appointment's current status.
type InvalidTransitionError struct {
	From models.AppointmentStatus
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %q", e.Op, e.From)
}

// ValidationError signals malformed or policy-violating input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
