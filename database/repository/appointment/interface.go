package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"telecare/models"
)

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")

// ErrDuplicateSlot is returned when a write would give a doctor two
// non-cancelled appointments at the same schedule time. It surfaces from
// the unique partial index, so the check-then-insert race cannot produce
// a double booking.
var ErrDuplicateSlot = errors.New("slot already booked for doctor")

// AppointmentRepository defines the data access methods used by the
// scheduling engine and the video session binder.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Appointment, error)
	// ListByDoctor returns appointments ascending by scheduleTime.
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// ListByUser returns appointments descending by scheduleTime.
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	// ExistsActiveAt reports whether a non-cancelled appointment occupies the
	// exact (doctorID, scheduleTime) slot. excludeID skips the appointment's
	// own record during reschedule checks; pass "" otherwise.
	ExistsActiveAt(ctx context.Context, doctorID string, scheduleTime time.Time, excludeID string) (bool, error)
	EnsureIndexes() error
}
