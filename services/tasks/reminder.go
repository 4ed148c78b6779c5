package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telecare/models"
	"telecare/services/scheduling"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for a reminder payload, scheduled to
// fire at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler queues appointment reminders on the shared Redis
// queue. It satisfies scheduling.ReminderScheduler.
type AsynqReminderScheduler struct {
	Client      *asynq.Client
	LeadMinutes int
}

var _ scheduling.ReminderScheduler = (*AsynqReminderScheduler)(nil)

// ScheduleReminder enqueues a reminder ahead of the appointment's schedule
// time. Appointments closer than the lead window fire immediately.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	lead := time.Duration(s.LeadMinutes) * time.Minute
	fireAt := appt.ScheduleTime.Add(-lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	payload := models.ReminderPayload{
		ReminderID:    uuid.New().String(),
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		DoctorID:      appt.DoctorID,
		FireDate:      fireAt.UTC().Format(time.RFC3339),
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Your appointment is at %s.", appt.ScheduleTime.UTC().Format(time.RFC3339)),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
