package video

import (
	"context"
	"errors"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	"telecare/models"
	"telecare/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// roomIDPrefix is the wire convention for session handles.
const roomIDPrefix = "room-"

// DefaultSessionService implements SessionService over the appointment
// repository, driving the scheduled -> ongoing lifecycle entry point.
type DefaultSessionService struct {
	Repo   appointmentRepo.AppointmentRepository
	Logger *zap.Logger
}

func (s *DefaultSessionService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// OpenSession issues an opaque room handle and flips the appointment to
// ongoing. Terminal appointments are rejected. Calling again on a scheduled
// or ongoing appointment silently replaces the prior handle; the replacement
// is logged because the old room becomes unreachable.
func (s *DefaultSessionService) OpenSession(ctx context.Context, appointmentID string) (string, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	if appt.Status.Terminal() {
		return "", &scheduling.InvalidTransitionError{From: appt.Status, Op: "open video session for"}
	}

	roomID := roomIDPrefix + uuid.New().String()
	if appt.VideoRoomID != "" {
		s.log().Warn("Replacing existing video room",
			zap.String("appointmentId", appt.ID),
			zap.String("oldRoomId", appt.VideoRoomID),
			zap.String("newRoomId", roomID))
	}

	appt.VideoRoomID = roomID
	appt.Status = models.StatusOngoing
	appt.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, appt); err != nil {
		return "", err
	}

	s.log().Info("Video room created",
		zap.String("appointmentId", appt.ID),
		zap.String("roomId", roomID))
	return roomID, nil
}

// GetSession returns the room handle bound to the appointment.
func (s *DefaultSessionService) GetSession(ctx context.Context, appointmentID string) (string, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	if appt.VideoRoomID == "" {
		return "", &NoSessionError{AppointmentID: appointmentID}
	}
	return appt.VideoRoomID, nil
}

func (s *DefaultSessionService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &scheduling.NotFoundError{Resource: "appointment", ID: id}
		}
		return nil, err
	}
	return appt, nil
}
