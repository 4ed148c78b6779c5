package video

import "fmt"

// NoSessionError signals that the appointment exists but no video room has
// been created for it yet.
type NoSessionError struct {
	AppointmentID string
}

func (e *NoSessionError) Error() string {
	return fmt.Sprintf("no video room created yet for appointment %s", e.AppointmentID)
}
