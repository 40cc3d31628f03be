package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/appointment"
	profRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/professional"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// --- фейки ---

type fakeApptRepo struct {
	byID map[int64]*domain.Appointment

	lastFilter      *domain.AppointmentsFilter
	filterResult    []*domain.Appointment
	cancelCalls     int
	cancelledReason string
	rescheduled     bool
	newDate         time.Time
	newStart        types.TimeString
	newEnd          types.TimeString
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeApptRepo) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = &filter
	return f.filterResult, nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	f.cancelCalls++
	f.cancelledReason = reason
	f.byID[id].Status = domain.StatusCancelled
	return nil
}

func (f *fakeApptRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime, endTime types.TimeString) error {
	if _, ok := f.byID[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	f.rescheduled = true
	f.newDate = date
	f.newStart = startTime
	f.newEnd = endTime
	return nil
}

type fakeProfRepo struct {
	byID    map[int64]*domain.Professional
	byEmail map[string]*domain.Professional
}

func (f *fakeProfRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	prof, ok := f.byID[id]
	if !ok {
		return nil, profRepo.ErrProfessionalNotFound
	}
	return prof, nil
}

func (f *fakeProfRepo) GetByEmail(_ context.Context, email string) (*domain.Professional, error) {
	prof, ok := f.byEmail[email]
	if !ok {
		return nil, profRepo.ErrProfessionalNotFound
	}
	return prof, nil
}

type fakeSchedule struct{}

func (f *fakeSchedule) Get(_ context.Context) (*domain.BusinessSchedule, error) {
	return domain.DefaultBusinessSchedule(), nil
}

type fakeAvailability struct {
	free          bool
	lastExcludeID int64
	calls         int
}

func (f *fakeAvailability) IsSlotBookableExcluding(_ context.Context, _ *domain.BusinessSchedule, _ int64, _ int, _ time.Time, _ int, excludeAppointmentID int64) (bool, error) {
	f.calls++
	f.lastExcludeID = excludeAppointmentID
	return f.free, nil
}

type fakeDirectory struct {
	byID    map[int64]*directory.User
	byEmail map[string]*directory.User
}

func (f *fakeDirectory) GetUser(_ context.Context, userID int64) (*directory.User, error) {
	user, ok := f.byID[userID]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeDirectory) GetUserByEmail(_ context.Context, email string) (*directory.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return user, nil
}

type fakeNotifier struct {
	cancellations int
	reschedules   int
	failErr       error
}

func (f *fakeNotifier) SendCancellation(_ notify.Recipient, _ *domain.Appointment) error {
	f.cancellations++
	return f.failErr
}

func (f *fakeNotifier) SendReschedule(_ notify.Recipient, _ *domain.Appointment) error {
	f.reschedules++
	return f.failErr
}

type fakeNotifLog struct {
	purged []int64
}

func (f *fakeNotifLog) DeleteByAppointment(_ context.Context, appointmentID int64) error {
	f.purged = append(f.purged, appointmentID)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- сборка ---

type testEnv struct {
	svc          *Service
	appts        *fakeApptRepo
	availability *fakeAvailability
	notifier     *fakeNotifier
	notifLog     *fakeNotifLog
	clock        *fakeClock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:                   7,
		Date:                 date(2026, time.September, 15),
		StartTime:            types.TimeString("10:00"),
		EndTime:              types.TimeString("11:00"),
		ClientID:             100,
		ProfessionalID:       1,
		ServiceIDs:           []int64{1, 2},
		Status:               domain.StatusConfirmed,
		ServiceNames:         "Corte + Color",
		TotalDurationMinutes: 60,
	}
}

func newTestEnv() *testEnv {
	appts := &fakeApptRepo{byID: map[int64]*domain.Appointment{7: testAppointment()}}
	profs := &fakeProfRepo{
		byID:    map[int64]*domain.Professional{1: {ID: 1, Name: "Ana", Email: "ana@salon.test", Active: true}},
		byEmail: map[string]*domain.Professional{"ana@salon.test": {ID: 1, Name: "Ana", Email: "ana@salon.test", Active: true}},
	}
	dir := &fakeDirectory{
		byID: map[int64]*directory.User{
			100: {ID: 100, Name: "Carlos", Email: "carlos@mail.test", Role: "client"},
			200: {ID: 200, Name: "Ana", Email: "ana@salon.test", Role: "professional"},
		},
		byEmail: map[string]*directory.User{
			"ana@salon.test": {ID: 200, Name: "Ana", Email: "ana@salon.test", Role: "professional"},
		},
	}
	availability := &fakeAvailability{free: true}
	notifier := &fakeNotifier{}
	notifLog := &fakeNotifLog{}
	// За пять суток до начала записи, правило 48 часов не мешает
	clock := &fakeClock{now: time.Date(2026, time.September, 10, 10, 0, 0, 0, time.UTC)}

	svc := NewService(appts, profs, &fakeSchedule{}, availability, dir, nil, notifier, notifLog, &fakeTxManager{}, nopLogger{})
	svc.timeProvider = clock

	return &testEnv{svc: svc, appts: appts, availability: availability, notifier: notifier, notifLog: notifLog, clock: clock}
}

// --- списки записей ---

func TestGetUserAppointments_ClientSeesOwn(t *testing.T) {
	env := newTestEnv()
	env.appts.filterResult = []*domain.Appointment{testAppointment()}

	result, err := env.svc.GetUserAppointments(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.NotNil(t, env.appts.lastFilter.ClientID)
	assert.Equal(t, int64(100), *env.appts.lastFilter.ClientID)
	assert.Nil(t, env.appts.lastFilter.ProfessionalID)
	assert.False(t, env.appts.lastFilter.IncludeInactive)
	require.NotNil(t, env.appts.lastFilter.StartDate)
	assert.Equal(t, date(2026, time.September, 10), *env.appts.lastFilter.StartDate)
}

func TestGetUserAppointments_ProfessionalSeesTheirDiary(t *testing.T) {
	env := newTestEnv()
	env.appts.filterResult = []*domain.Appointment{testAppointment()}

	result, err := env.svc.GetUserAppointments(context.Background(), 200)

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.NotNil(t, env.appts.lastFilter.ProfessionalID)
	assert.Equal(t, int64(1), *env.appts.lastFilter.ProfessionalID)
	assert.Nil(t, env.appts.lastFilter.ClientID)
}

func TestGetUserAppointments_UnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetUserAppointments(context.Background(), 999)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

// --- отмена ---

func TestCancel_Success(t *testing.T) {
	env := newTestEnv()
	reason := "No puedo asistir"

	resp, err := env.svc.Cancel(context.Background(), 7, 100, &reason)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Appointment.Status)
	require.NotNil(t, resp.Appointment.CancellationReason)
	assert.Equal(t, reason, *resp.Appointment.CancellationReason)
	assert.Equal(t, 1, env.appts.cancelCalls)
	assert.Equal(t, reason, env.appts.cancelledReason)
	assert.Equal(t, 1, env.notifier.cancellations)
}

func TestCancel_DefaultReason(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Cancel(context.Background(), 7, 100, nil)

	require.NoError(t, err)
	assert.Equal(t, defaultCancellationReason, env.appts.cancelledReason)
	require.NotNil(t, resp.Appointment.CancellationReason)
}

func TestCancel_LessThan48HoursFails(t *testing.T) {
	env := newTestEnv()
	// До начала записи остаётся 40 часов
	env.clock.now = time.Date(2026, time.September, 13, 18, 0, 0, 0, time.UTC)

	_, err := env.svc.Cancel(context.Background(), 7, 100, nil)

	assert.ErrorIs(t, err, ErrTooLateToModify)
	assert.Equal(t, 0, env.appts.cancelCalls)
	assert.Equal(t, domain.StatusConfirmed, env.appts.byID[7].Status)
	assert.Equal(t, 0, env.notifier.cancellations)
}

func TestCancel_NoticeBoundary(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{
			name:    "47h59m before start",
			now:     time.Date(2026, time.September, 13, 10, 1, 0, 0, time.UTC),
			wantErr: ErrTooLateToModify,
		},
		{
			name: "48h01m before start",
			now:  time.Date(2026, time.September, 13, 9, 59, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.clock.now = tt.now

			_, err := env.svc.Cancel(context.Background(), 7, 100, nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancel_NotOwner(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Cancel(context.Background(), 7, 555, nil)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, env.appts.cancelCalls)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	env := newTestEnv()
	env.appts.byID[7].Status = domain.StatusCancelled

	_, err := env.svc.Cancel(context.Background(), 7, 100, nil)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Cancel(context.Background(), 404, 100, nil)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_TooLongReason(t *testing.T) {
	env := newTestEnv()
	reason := string(make([]byte, domain.MaxCancellationReasonLength+1))

	_, err := env.svc.Cancel(context.Background(), 7, 100, &reason)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, env.appts.cancelCalls)
}

// --- перенос ---

func TestReschedule_Success(t *testing.T) {
	env := newTestEnv()
	newDate := date(2026, time.September, 22)

	resp, err := env.svc.Reschedule(context.Background(), 7, 100, newDate, types.TimeString("14:00"))

	require.NoError(t, err)
	assert.True(t, env.appts.rescheduled)
	assert.Equal(t, newDate, env.appts.newDate)
	assert.Equal(t, types.TimeString("14:00"), env.appts.newStart)
	assert.Equal(t, types.TimeString("15:00"), env.appts.newEnd)
	assert.Equal(t, types.TimeString("14:00"), resp.Appointment.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.Appointment.EndTime)
	assert.Equal(t, 1, env.notifier.reschedules)
}

func TestReschedule_ExcludesOwnSlotFromBusy(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("14:00"))

	require.NoError(t, err)
	assert.Equal(t, 1, env.availability.calls)
	assert.Equal(t, int64(7), env.availability.lastExcludeID)
}

func TestReschedule_PurgesReminderLog(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("14:00"))

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, env.notifLog.purged)
}

func TestReschedule_SlotTaken(t *testing.T) {
	env := newTestEnv()
	env.availability.free = false

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("14:00"))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.False(t, env.appts.rescheduled)
	assert.Empty(t, env.notifLog.purged)
	assert.Equal(t, 0, env.notifier.reschedules)
}

func TestReschedule_LessThan48HoursFails(t *testing.T) {
	env := newTestEnv()
	env.clock.now = time.Date(2026, time.September, 14, 12, 0, 0, 0, time.UTC)

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("14:00"))

	assert.ErrorIs(t, err, ErrTooLateToModify)
	assert.False(t, env.appts.rescheduled)
}

func TestReschedule_InvalidTime(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("25:70"))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReschedule_DoesNotFitIntoDay(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Reschedule(context.Background(), 7, 100, date(2026, time.September, 22), types.TimeString("23:30"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, env.appts.rescheduled)
}

func TestCancel_NotificationFailureDoesNotFailCancel(t *testing.T) {
	env := newTestEnv()
	env.notifier.failErr = assert.AnError

	resp, err := env.svc.Cancel(context.Background(), 7, 100, nil)

	require.NoError(t, err)
	require.Len(t, resp.SideEffects, 1)
	assert.Equal(t, effectClientNotification, resp.SideEffects[0].Effect)
	assert.False(t, resp.SideEffects[0].OK)
}
