package scheduling

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	doctorRepo "telecare/database/repository/doctor"
	userRepo "telecare/database/repository/user"
	"telecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	doctorD1 = "650000000000000000000001"
	doctorD2 = "650000000000000000000002"
	userU1   = "651000000000000000000001"
	userU2   = "651000000000000000000002"
	payment1 = "652000000000000000000001"
	payment2 = "652000000000000000000002"
)

var slotTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// fakeAppointmentRepo is an in-memory AppointmentRepository that mirrors the
// unique partial index: at most one non-cancelled appointment per
// (doctorId, scheduleTime).
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) slotHeld(doctorID string, at time.Time, excludeID string) bool {
	for _, a := range f.appts {
		if a.ID == excludeID || a.Status == models.StatusCancelled {
			continue
		}
		if a.DoctorID == doctorID && a.ScheduleTime.Equal(at) {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.Status != models.StatusCancelled && f.slotHeld(appt.DoctorID, appt.ScheduleTime, appt.ID) {
		return appointmentRepo.ErrDuplicateSlot
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[appt.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.Status != models.StatusCancelled && f.slotHeld(appt.DoctorID, appt.ScheduleTime, appt.ID) {
		return appointmentRepo.ErrDuplicateSlot
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Appointment, 0, len(f.appts))
	for _, a := range f.appts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduleTime.Before(out[j].ScheduleTime) })
	return out, nil
}

func (f *fakeAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduleTime.After(out[j].ScheduleTime) })
	return out, nil
}

func (f *fakeAppointmentRepo) ExistsActiveAt(ctx context.Context, doctorID string, at time.Time, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotHeld(doctorID, at, excludeID), nil
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

type fakeDoctorRepo struct {
	doctors map[string]models.Doctor
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrNotFound
	}
	return &d, nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

type recordingReminderScheduler struct {
	scheduled []string
}

func (r *recordingReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	r.scheduled = append(r.scheduled, appt.ID)
	return nil
}

func newTestService() (*DefaultSchedulingService, *fakeAppointmentRepo, *recordingReminderScheduler) {
	repo := newFakeAppointmentRepo()
	reminders := &recordingReminderScheduler{}
	svc := &DefaultSchedulingService{
		Repo: repo,
		DoctorRepo: &fakeDoctorRepo{doctors: map[string]models.Doctor{
			doctorD1: {
				ID:              doctorD1,
				Name:            "Dr. Achieng",
				Specialization:  "Cardiology",
				ConsultationFee: 120,
				AvailableSlots: []models.AvailabilitySlot{
					{Day: "Sat", StartTime: "09:00", EndTime: "13:00"},
				},
			},
			doctorD2: {ID: doctorD2, Name: "Dr. Otieno", Specialization: "Dermatology"},
		}},
		UserRepo: &fakeUserRepo{users: map[string]models.User{
			userU1: {ID: userU1, Name: "Amina", Email: "amina@example.com"},
			userU2: {ID: userU2, Name: "Brian", Email: "brian@example.com"},
		}},
		Reminders: reminders,
	}
	return svc, repo, reminders
}

func book(t *testing.T, svc *DefaultSchedulingService, doctorID, userID string, at time.Time) *models.Appointment {
	t.Helper()
	appt, err := svc.Book(context.Background(), BookInput{
		DoctorID:     doctorID,
		UserID:       userID,
		ScheduleTime: at,
	})
	require.NoError(t, err)
	return appt
}

func TestBookCreatesScheduledAppointment(t *testing.T) {
	svc, _, reminders := newTestService()

	appt := book(t, svc, doctorD1, userU1, slotTime)

	assert.Len(t, appt.ID, 24)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, models.ModeVideo, appt.Mode, "mode defaults to video")
	assert.Empty(t, appt.PaymentID)
	assert.Empty(t, appt.VideoRoomID)
	assert.Equal(t, []string{appt.ID}, reminders.scheduled)
}

func TestBookRejectsUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Book(context.Background(), BookInput{
		DoctorID:     "653000000000000000000009",
		UserID:       userU1,
		ScheduleTime: slotTime,
	})

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "doctor", nfe.Resource)
}

func TestBookRejectsMalformedIDs(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Book(context.Background(), BookInput{
		DoctorID:     "not-a-hex-id",
		UserID:       userU1,
		ScheduleTime: slotTime,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "doctorId", ve.Field)
}

func TestBookSameSlotConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)

	_, err := svc.Book(context.Background(), BookInput{
		DoctorID:     doctorD1,
		UserID:       userU2,
		ScheduleTime: slotTime,
	})

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, doctorD1, ce.DoctorID)
}

func TestBookOneSecondApartNeverConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)

	appt := book(t, svc, doctorD1, userU2, slotTime.Add(time.Second))
	assert.Equal(t, models.StatusScheduled, appt.Status)
}

func TestBookDifferentDoctorSameTime(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)

	appt := book(t, svc, doctorD2, userU1, slotTime)
	assert.Equal(t, doctorD2, appt.DoctorID)
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	svc, _, _ := newTestService()
	first := book(t, svc, doctorD1, userU1, slotTime)

	_, err := svc.Book(context.Background(), BookInput{DoctorID: doctorD1, UserID: userU2, ScheduleTime: slotTime})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)

	cancelled, err := svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	rebooked := book(t, svc, doctorD1, userU2, slotTime)
	assert.Equal(t, userU2, rebooked.UserID)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	_, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)

	again, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, again.Status)
}

func TestCancelCompletedFails(t *testing.T) {
	svc, repo, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)
	forceStatus(t, repo, appt.ID, models.StatusCompleted)

	_, err := svc.Cancel(context.Background(), appt.ID)

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, models.StatusCompleted, ite.From)
}

func TestRescheduleMovesSlot(t *testing.T) {
	svc, _, reminders := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)
	newTime := slotTime.Add(2 * time.Hour)

	moved, err := svc.Reschedule(context.Background(), appt.ID, newTime)

	require.NoError(t, err)
	assert.True(t, moved.ScheduleTime.Equal(newTime))
	assert.Equal(t, models.StatusScheduled, moved.Status)
	assert.Len(t, reminders.scheduled, 2, "reschedule re-queues the reminder")
}

func TestRescheduleOntoOwnSlotSucceeds(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	moved, err := svc.Reschedule(context.Background(), appt.ID, slotTime)
	require.NoError(t, err)
	assert.True(t, moved.ScheduleTime.Equal(slotTime))
}

func TestRescheduleOntoOccupiedSlotConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)
	other := book(t, svc, doctorD1, userU2, slotTime.Add(time.Hour))

	_, err := svc.Reschedule(context.Background(), other.ID, slotTime)

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestRescheduleTerminalFails(t *testing.T) {
	for _, status := range []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _ := newTestService()
			appt := book(t, svc, doctorD1, userU1, slotTime)
			forceStatus(t, repo, appt.ID, status)

			_, err := svc.Reschedule(context.Background(), appt.ID, slotTime.Add(time.Hour))

			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite)
		})
	}
}

func TestAttachPaymentKeepsStatus(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	linked, err := svc.AttachPayment(context.Background(), appt.ID, payment1)

	require.NoError(t, err)
	assert.Equal(t, payment1, linked.PaymentID)
	assert.Equal(t, models.StatusScheduled, linked.Status, "payment linkage is orthogonal to status")
}

func TestAttachPaymentAllowedOnTerminalAppointment(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)
	_, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)

	linked, err := svc.AttachPayment(context.Background(), appt.ID, payment1)

	require.NoError(t, err)
	assert.Equal(t, payment1, linked.PaymentID)
	assert.Equal(t, models.StatusCancelled, linked.Status)
}

func TestAttachPaymentNeverReplacesExistingReference(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)
	_, err := svc.AttachPayment(context.Background(), appt.ID, payment1)
	require.NoError(t, err)

	// Same reference is a no-op.
	same, err := svc.AttachPayment(context.Background(), appt.ID, payment1)
	require.NoError(t, err)
	assert.Equal(t, payment1, same.PaymentID)

	// A different reference is rejected.
	_, err = svc.AttachPayment(context.Background(), appt.ID, payment2)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCompleteRequiresOngoing(t *testing.T) {
	svc, repo, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	_, err := svc.Complete(context.Background(), appt.ID)
	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)

	forceStatus(t, repo, appt.ID, models.StatusOngoing)
	done, err := svc.Complete(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	notes := "bring previous scans"
	mode := models.ModeInPerson
	updated, err := svc.Update(context.Background(), appt.ID, UpdateInput{Notes: &notes, Mode: &mode})

	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, models.ModeInPerson, updated.Mode)
	assert.True(t, updated.ScheduleTime.Equal(slotTime), "unset fields stay untouched")
}

func TestUpdateStatusGoesThroughLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	completed := models.StatusCompleted
	_, err := svc.Update(context.Background(), appt.ID, UpdateInput{Status: &completed})

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite, "scheduled cannot jump straight to completed")

	ongoing := models.StatusOngoing
	updated, err := svc.Update(context.Background(), appt.ID, UpdateInput{Status: &ongoing})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOngoing, updated.Status)
}

func TestUpdateScheduleTimeChecksConflict(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)
	other := book(t, svc, doctorD1, userU2, slotTime.Add(time.Hour))

	_, err := svc.Update(context.Background(), other.ID, UpdateInput{ScheduleTime: &slotTime})

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestListByDoctorAscending(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime.Add(2*time.Hour))
	book(t, svc, doctorD1, userU1, slotTime)
	book(t, svc, doctorD1, userU2, slotTime.Add(time.Hour))

	appts, err := svc.ListByDoctor(context.Background(), doctorD1)

	require.NoError(t, err)
	require.Len(t, appts, 3)
	for i := 1; i < len(appts); i++ {
		assert.False(t, appts[i].ScheduleTime.Before(appts[i-1].ScheduleTime))
	}
}

func TestListByUserDescending(t *testing.T) {
	svc, _, _ := newTestService()
	book(t, svc, doctorD1, userU1, slotTime)
	book(t, svc, doctorD2, userU1, slotTime.Add(2*time.Hour))
	book(t, svc, doctorD1, userU1, slotTime.Add(time.Hour))

	appts, err := svc.ListByUser(context.Background(), userU1)

	require.NoError(t, err)
	require.Len(t, appts, 3)
	for i := 1; i < len(appts); i++ {
		assert.False(t, appts[i].ScheduleTime.After(appts[i-1].ScheduleTime))
	}
}

func TestGetDetailPopulatesReferences(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)

	detail, err := svc.GetDetail(context.Background(), appt.ID)

	require.NoError(t, err)
	require.NotNil(t, detail.Doctor)
	assert.Equal(t, "Cardiology", detail.Doctor.Specialization)
	require.NotNil(t, detail.User)
	assert.Equal(t, "amina@example.com", detail.User.Email)
}

func TestDeleteBypassesLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	appt := book(t, svc, doctorD1, userU1, slotTime)
	_, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), appt.ID))

	_, err = svc.GetByID(context.Background(), appt.ID)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)

	err = svc.Delete(context.Background(), appt.ID)
	require.ErrorAs(t, err, &nfe)
}

func TestEnforceAvailabilityGatesBooking(t *testing.T) {
	svc, _, _ := newTestService()
	svc.EnforceAvailability = true

	// 2024-06-01 is a Saturday; doctor D1 publishes Sat 09:00-13:00.
	appt := book(t, svc, doctorD1, userU1, slotTime)
	assert.Equal(t, models.StatusScheduled, appt.Status)

	_, err := svc.Book(context.Background(), BookInput{
		DoctorID:     doctorD1,
		UserID:       userU2,
		ScheduleTime: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "scheduleTime", ve.Field)
}

func forceStatus(t *testing.T, repo *fakeAppointmentRepo, id string, status models.AppointmentStatus) {
	t.Helper()
	appt, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	appt.Status = status
	require.NoError(t, repo.Update(context.Background(), appt))
}
