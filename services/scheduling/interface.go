package scheduling

import (
	"context"
	"time"

	"telecare/models"
)

// BookInput carries the fields needed to reserve a slot.
type BookInput struct {
	DoctorID     string
	UserID       string
	ScheduleTime time.Time
	Mode         models.AppointmentMode
	Notes        string
}

// UpdateInput carries a partial update. Nil fields are left untouched.
// DoctorID and UserID are immutable and deliberately absent.
type UpdateInput struct {
	ScheduleTime *time.Time
	Status       *models.AppointmentStatus
	Mode         *models.AppointmentMode
	Notes        *string
}

// SchedulingService is the public contract of the appointment scheduling
// engine: slot reservation, lifecycle transitions, payment linkage, and
// time-ordered queries.
type SchedulingService interface {
	Book(ctx context.Context, in BookInput) (*models.Appointment, error)
	Reschedule(ctx context.Context, id string, newTime time.Time) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) (*models.Appointment, error)
	Complete(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, id string, in UpdateInput) (*models.Appointment, error)
	AttachPayment(ctx context.Context, id, paymentID string) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetDetail(ctx context.Context, id string) (*models.AppointmentDetail, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// ReminderScheduler queues an appointment reminder for delivery before the
// schedule time. Implementations must be safe to call concurrently.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}
