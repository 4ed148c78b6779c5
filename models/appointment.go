package models

import "time"

// AppointmentStatus enumerates the lifecycle states of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusOngoing   AppointmentStatus = "ongoing"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether the status accepts no further lifecycle transition.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AppointmentMode is the consultation channel.
type AppointmentMode string

const (
	ModeVideo    AppointmentMode = "video"
	ModeInPerson AppointmentMode = "in_person"
)

// Valid reports whether m is a known consultation mode.
func (m AppointmentMode) Valid() bool {
	return m == ModeVideo || m == ModeInPerson
}

// Appointment represents a reserved consultation slot with a doctor.
// DoctorID and UserID are immutable after creation. PaymentID and
// VideoRoomID are historical facts: once set they are never cleared.
type Appointment struct {
	ID           string            `bson:"id" json:"id"`
	DoctorID     string            `bson:"doctorId" json:"doctorId"`
	UserID       string            `bson:"userId" json:"userId"`
	ScheduleTime time.Time         `bson:"scheduleTime" json:"scheduleTime"`
	Mode         AppointmentMode   `bson:"mode" json:"mode"`
	Status       AppointmentStatus `bson:"status" json:"status"`
	PaymentID    string            `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	VideoRoomID  string            `bson:"videoRoomId,omitempty" json:"videoRoomId,omitempty"`
	Notes        string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}
