package models

// ReminderPayload is the task body queued when an appointment is booked and
// delivered to the notification boundary shortly before the schedule time.
type ReminderPayload struct {
	ReminderID    string `json:"reminderId"`
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	DoctorID      string `json:"doctorId"`
	FireDate      string `json:"fireDate"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
