package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// --- фейки ---

type fakeApptRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeApptRepo) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if filter.StartDate != nil && appt.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && appt.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type logKey struct {
	apptID int64
	kind   domain.NotificationType
}

type fakeNotifLog struct {
	entries       map[logKey]bool
	markSentCalls int
}

func (f *fakeNotifLog) Exists(_ context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error) {
	return f.entries[logKey{appointmentID, notificationType}], nil
}

func (f *fakeNotifLog) MarkSent(_ context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error) {
	f.markSentCalls++
	key := logKey{appointmentID, notificationType}
	if f.entries[key] {
		return false, nil
	}
	f.entries[key] = true
	return true, nil
}

type fakeDirectory struct{}

func (f *fakeDirectory) GetUser(_ context.Context, userID int64) (*directory.User, error) {
	return &directory.User{ID: userID, Name: "Carlos", Email: "carlos@mail.test", Role: "client"}, nil
}

type sentReminder struct {
	apptID int64
	kind   domain.NotificationType
}

type fakeNotifier struct {
	sent    []sentReminder
	failErr error
}

func (f *fakeNotifier) SendReminder(_ notify.Recipient, appt *domain.Appointment, reminderType domain.NotificationType) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, sentReminder{appt.ID, reminderType})
	return nil
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

func date(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

func appointmentOn(id int64, day int) *domain.Appointment {
	return &domain.Appointment{
		ID:             id,
		Date:           date(day),
		StartTime:      types.TimeString("10:00"),
		EndTime:        types.TimeString("11:00"),
		ClientID:       100,
		ProfessionalID: 1,
		Status:         domain.StatusConfirmed,
	}
}

func newTestService(clock *fakeClock, appts ...*domain.Appointment) (*Service, *fakeNotifLog, *fakeNotifier) {
	notifLog := &fakeNotifLog{entries: map[logKey]bool{}}
	notifier := &fakeNotifier{}
	svc := NewService(&fakeApptRepo{appointments: appts}, notifLog, &fakeDirectory{}, notifier, nopLogger{})
	svc.timeProvider = clock
	return svc, notifLog, notifier
}

// --- тесты ---

func TestSweep_SendsBothWindows(t *testing.T) {
	clock := &fakeClock{now: date(10).Add(14 * time.Hour)}
	svc, _, notifier := newTestService(clock,
		appointmentOn(1, 13), // через 3 дня
		appointmentOn(2, 11), // завтра
		appointmentOn(3, 20), // вне окон
	)

	svc.Sweep(context.Background())

	require.Len(t, notifier.sent, 2)
	assert.Contains(t, notifier.sent, sentReminder{1, domain.NotificationReminder3d})
	assert.Contains(t, notifier.sent, sentReminder{2, domain.NotificationReminder1d})
}

func TestSweep_IsIdempotent(t *testing.T) {
	clock := &fakeClock{now: date(10).Add(14 * time.Hour)}
	svc, _, notifier := newTestService(clock, appointmentOn(1, 13))

	// Часовой cron запускает обход много раз за день
	svc.Sweep(context.Background())
	svc.Sweep(context.Background())
	svc.Sweep(context.Background())

	assert.Len(t, notifier.sent, 1)
}

func TestSweep_SentReminderIsSkippedByLogCheck(t *testing.T) {
	clock := &fakeClock{now: date(10).Add(14 * time.Hour)}
	svc, notifLog, notifier := newTestService(clock, appointmentOn(1, 13))
	notifLog.entries[logKey{1, domain.NotificationReminder3d}] = true

	svc.Sweep(context.Background())

	// Проверка журнала отсекает уже отправленное без попытки вставки
	assert.Empty(t, notifier.sent)
	assert.Zero(t, notifLog.markSentCalls)
}

func TestSweep_SameAppointmentGetsBothReminderTypes(t *testing.T) {
	svc, _, notifier := newTestService(&fakeClock{now: date(10)}, appointmentOn(1, 13))

	svc.Sweep(context.Background())

	// Два дня спустя та же запись попадает в окно за 1 день
	svc.timeProvider = &fakeClock{now: date(12)}
	svc.Sweep(context.Background())

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, sentReminder{1, domain.NotificationReminder3d}, notifier.sent[0])
	assert.Equal(t, sentReminder{1, domain.NotificationReminder1d}, notifier.sent[1])
}

func TestSweep_SkipsCancelled(t *testing.T) {
	cancelled := appointmentOn(1, 13)
	cancelled.Status = domain.StatusCancelled
	svc, _, notifier := newTestService(&fakeClock{now: date(10)}, cancelled)

	svc.Sweep(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestSweep_SendFailureDoesNotStopSweep(t *testing.T) {
	clock := &fakeClock{now: date(10)}
	svc, notifLog, notifier := newTestService(clock, appointmentOn(1, 13), appointmentOn(2, 13))
	notifier.failErr = assert.AnError

	svc.Sweep(context.Background())

	// Обе записи помечены, несмотря на сбой отправки
	assert.True(t, notifLog.entries[logKey{1, domain.NotificationReminder3d}])
	assert.True(t, notifLog.entries[logKey{2, domain.NotificationReminder3d}])
	assert.Empty(t, notifier.sent)
}
