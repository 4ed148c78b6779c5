package scheduling

import (
	"context"
	"errors"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	doctorRepo "telecare/database/repository/doctor"
	userRepo "telecare/database/repository/user"
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultSchedulingService implements SchedulingService over the appointment
// repository, with doctor and user lookups for validation and population.
type DefaultSchedulingService struct {
	Repo       appointmentRepo.AppointmentRepository
	DoctorRepo doctorRepo.DoctorRepository
	UserRepo   userRepo.UserRepository
	Reminders  ReminderScheduler
	Logger     *zap.Logger

	// EnforceAvailability turns the doctor's published windows from advisory
	// data into a hard booking guard.
	EnforceAvailability bool
}

func (s *DefaultSchedulingService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// validateObjectID checks the 24-character hexadecimal identifier format
// used by all externally supplied ids.
func validateObjectID(field, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return &ValidationError{Field: field, Message: "must be a 24-character hexadecimal id"}
	}
	return nil
}

// Book reserves a slot: the doctor must exist and the exact
// (doctorId, scheduleTime) slot must not be held by a non-cancelled
// appointment. The unique slot index backs the conflict check, so two
// concurrent bookings for the same slot cannot both commit.
func (s *DefaultSchedulingService) Book(ctx context.Context, in BookInput) (*models.Appointment, error) {
	if err := validateObjectID("doctorId", in.DoctorID); err != nil {
		return nil, err
	}
	if err := validateObjectID("userId", in.UserID); err != nil {
		return nil, err
	}
	if in.ScheduleTime.IsZero() {
		return nil, &ValidationError{Field: "scheduleTime", Message: "is required"}
	}
	if in.Mode == "" {
		in.Mode = models.ModeVideo
	}
	if !in.Mode.Valid() {
		return nil, &ValidationError{Field: "mode", Message: "must be video or in_person"}
	}

	doctor, err := s.DoctorRepo.GetByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "doctor", ID: in.DoctorID}
		}
		return nil, err
	}

	if !WithinAvailability(doctor, in.ScheduleTime) {
		if s.EnforceAvailability {
			return nil, &ValidationError{Field: "scheduleTime", Message: "outside the doctor's available hours"}
		}
		s.log().Warn("Booking outside doctor's published availability",
			zap.String("doctorId", in.DoctorID),
			zap.Time("scheduleTime", in.ScheduleTime))
	}

	occupied, err := s.Repo.ExistsActiveAt(ctx, in.DoctorID, in.ScheduleTime, "")
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, &ConflictError{DoctorID: in.DoctorID, ScheduleTime: in.ScheduleTime}
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:           primitive.NewObjectID().Hex(),
		DoctorID:     in.DoctorID,
		UserID:       in.UserID,
		ScheduleTime: in.ScheduleTime,
		Mode:         in.Mode,
		Status:       models.StatusScheduled,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			// Lost the race between the check and the insert; the index held.
			return nil, &ConflictError{DoctorID: in.DoctorID, ScheduleTime: in.ScheduleTime}
		}
		return nil, err
	}

	s.queueReminder(ctx, appt)
	s.log().Info("Appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("userId", appt.UserID),
		zap.Time("scheduleTime", appt.ScheduleTime))
	return appt, nil
}

// Reschedule moves a non-terminal appointment to a new slot, re-running the
// conflict check against the new time while excluding the appointment's own
// record.
func (s *DefaultSchedulingService) Reschedule(ctx context.Context, id string, newTime time.Time) (*models.Appointment, error) {
	if newTime.IsZero() {
		return nil, &ValidationError{Field: "scheduleTime", Message: "is required"}
	}

	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, &InvalidTransitionError{From: appt.Status, Op: "reschedule"}
	}

	occupied, err := s.Repo.ExistsActiveAt(ctx, appt.DoctorID, newTime, appt.ID)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, &ConflictError{DoctorID: appt.DoctorID, ScheduleTime: newTime}
	}

	appt.ScheduleTime = newTime
	appt.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}

	s.queueReminder(ctx, appt)
	s.log().Info("Appointment rescheduled",
		zap.String("appointmentId", appt.ID),
		zap.Time("scheduleTime", newTime))
	return appt, nil
}

// Cancel transitions the appointment to cancelled. Cancelling an already
// cancelled appointment is a no-op, not an error; a completed appointment
// cannot be cancelled.
func (s *DefaultSchedulingService) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return appt, nil
	}
	if !CanTransition(appt.Status, models.StatusCancelled) {
		return nil, &InvalidTransitionError{From: appt.Status, Op: "cancel"}
	}
	appt.Status = models.StatusCancelled

	appt.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	s.log().Info("Appointment cancelled", zap.String("appointmentId", appt.ID))
	return appt, nil
}

// Complete finishes an ongoing appointment.
func (s *DefaultSchedulingService) Complete(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, models.StatusCompleted) {
		return nil, &InvalidTransitionError{From: appt.Status, Op: "complete"}
	}
	appt.Status = models.StatusCompleted
	appt.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	s.log().Info("Appointment completed", zap.String("appointmentId", appt.ID))
	return appt, nil
}

// Update applies a partial update. Status changes go through the lifecycle
// machine; a schedule time change follows the reschedule rules, including
// the conflict re-check.
func (s *DefaultSchedulingService) Update(ctx context.Context, id string, in UpdateInput) (*models.Appointment, error) {
	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != appt.Status {
		if !in.Status.Valid() {
			return nil, &ValidationError{Field: "status", Message: "unknown status"}
		}
		if err := Transition(appt, *in.Status); err != nil {
			return nil, err
		}
	}

	if in.ScheduleTime != nil && !in.ScheduleTime.Equal(appt.ScheduleTime) {
		if appt.Status.Terminal() {
			return nil, &InvalidTransitionError{From: appt.Status, Op: "reschedule"}
		}
		occupied, err := s.Repo.ExistsActiveAt(ctx, appt.DoctorID, *in.ScheduleTime, appt.ID)
		if err != nil {
			return nil, err
		}
		if occupied {
			return nil, &ConflictError{DoctorID: appt.DoctorID, ScheduleTime: *in.ScheduleTime}
		}
		appt.ScheduleTime = *in.ScheduleTime
	}

	if in.Mode != nil {
		if !in.Mode.Valid() {
			return nil, &ValidationError{Field: "mode", Message: "must be video or in_person"}
		}
		appt.Mode = *in.Mode
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}

	appt.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	s.log().Info("Appointment updated", zap.String("appointmentId", appt.ID))
	return appt, nil
}

// AttachPayment records the settlement reference on the appointment. Payment
// linkage is orthogonal to status: a late-settling payment may attach even to
// a completed or cancelled appointment. Once set the reference is a
// historical fact and cannot be replaced.
func (s *DefaultSchedulingService) AttachPayment(ctx context.Context, id, paymentID string) (*models.Appointment, error) {
	if err := validateObjectID("paymentId", paymentID); err != nil {
		return nil, err
	}

	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.PaymentID == paymentID {
		return appt, nil
	}
	if appt.PaymentID != "" {
		return nil, &ValidationError{Field: "paymentId", Message: "already set"}
	}

	appt.PaymentID = paymentID
	appt.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	s.log().Info("Payment attached",
		zap.String("appointmentId", appt.ID),
		zap.String("paymentId", paymentID))
	return appt, nil
}

// GetByID retrieves a single appointment.
func (s *DefaultSchedulingService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return s.getExisting(ctx, id)
}

// GetDetail retrieves an appointment with its doctor and user references
// resolved. Population is best-effort: a dangling reference leaves the
// summary nil rather than failing the read.
func (s *DefaultSchedulingService) GetDetail(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	appt, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.AppointmentDetail{Appointment: *appt}

	if doctor, err := s.DoctorRepo.GetByID(ctx, appt.DoctorID); err == nil {
		detail.Doctor = &models.DoctorSummary{
			ID:              doctor.ID,
			Specialization:  doctor.Specialization,
			ConsultationFee: doctor.ConsultationFee,
		}
	} else {
		s.log().Warn("Failed to populate doctor reference",
			zap.String("appointmentId", appt.ID),
			zap.String("doctorId", appt.DoctorID),
			zap.Error(err))
	}

	if usr, err := s.UserRepo.GetByID(ctx, appt.UserID); err == nil {
		detail.User = &models.UserSummary{ID: usr.ID, Name: usr.Name, Email: usr.Email}
	} else {
		s.log().Warn("Failed to populate user reference",
			zap.String("appointmentId", appt.ID),
			zap.String("userId", appt.UserID),
			zap.Error(err))
	}

	return detail, nil
}

// ListAll returns every appointment. Administrative use.
func (s *DefaultSchedulingService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.Repo.GetAll(ctx)
}

// ListByDoctor returns a doctor's appointments ascending by scheduleTime.
func (s *DefaultSchedulingService) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.Repo.ListByDoctor(ctx, doctorID)
}

// ListByUser returns a user's appointments descending by scheduleTime.
func (s *DefaultSchedulingService) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Delete hard-deletes an appointment, bypassing the lifecycle machine.
// Administrative correction only.
func (s *DefaultSchedulingService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return &NotFoundError{Resource: "appointment", ID: id}
		}
		return err
	}
	s.log().Info("Appointment deleted", zap.String("appointmentId", id))
	return nil
}

func (s *DefaultSchedulingService) getExisting(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "appointment", ID: id}
		}
		return nil, err
	}
	return appt, nil
}

func (s *DefaultSchedulingService) persist(ctx context.Context, appt *models.Appointment) error {
	if err := s.Repo.Update(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return &ConflictError{DoctorID: appt.DoctorID, ScheduleTime: appt.ScheduleTime}
		}
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return &NotFoundError{Resource: "appointment", ID: appt.ID}
		}
		return err
	}
	return nil
}

// queueReminder enqueues the pre-appointment reminder. Reminder failures
// never fail the booking.
func (s *DefaultSchedulingService) queueReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
		s.log().Warn("Failed to queue appointment reminder",
			zap.String("appointmentId", appt.ID),
			zap.Error(err))
	}
}
