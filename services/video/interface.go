package video

import "context"

// SessionService binds ephemeral video-room handles to appointments.
type SessionService interface {
	// OpenSession issues a room handle for the appointment and marks it
	// ongoing. A second call on a non-terminal appointment replaces the
	// existing handle.
	OpenSession(ctx context.Context, appointmentID string) (string, error)
	// GetSession returns the appointment's room handle.
	GetSession(ctx context.Context, appointmentID string) (string, error)
}
