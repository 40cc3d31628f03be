package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/pkg/ptr"
)

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

type fakeApptRepo struct {
	created []*domain.Appointment
	counts  map[int64]int
	nextID  int64
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeApptRepo) CountActiveByDate(_ context.Context, _ time.Time) (map[int64]int, error) {
	return f.counts, nil
}

func (f *fakeApptRepo) UpdateEventIDs(_ context.Context, _ int64, _, _, _ *string) error {
	return nil
}

type fakeProfRepo struct {
	items []*domain.Professional
}

func (f *fakeProfRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	for _, prof := range f.items {
		if prof.ID == id {
			return prof, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeProfRepo) GetActive(_ context.Context) ([]*domain.Professional, error) {
	active := make([]*domain.Professional, 0)
	for _, prof := range f.items {
		if prof.Active {
			active = append(active, prof)
		}
	}
	return active, nil
}

type fakeSchedule struct{}

func (fakeSchedule) Get(_ context.Context) (*domain.BusinessSchedule, error) {
	return domain.DefaultBusinessSchedule(), nil
}

// fakeAvailability отвечает на проверку слота по карте professional -> свободен
type fakeAvailability struct {
	free map[int64]bool
}

func (f *fakeAvailability) IsSlotBookable(_ context.Context, _ *domain.BusinessSchedule, professionalID int64, _ int, _ time.Time, _ int) (bool, error) {
	return f.free[professionalID], nil
}

type fakeCatalog struct {
	services map[int64]*catalog.Service
}

func (f *fakeCatalog) GetServices(_ context.Context, serviceIDs []int64) ([]*catalog.Service, error) {
	result := make([]*catalog.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := f.services[id]
		if !ok {
			return nil, catalog.ErrServiceNotFound
		}
		result = append(result, svc)
	}
	return result, nil
}

type fakeDirectory struct {
	users map[int64]*directory.User
}

func (f *fakeDirectory) GetUser(_ context.Context, userID int64) (*directory.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeDirectory) GetUserByEmail(_ context.Context, email string) (*directory.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, directory.ErrUserNotFound
}

type fakeNotifier struct {
	sent []string
	fail bool
}

func (f *fakeNotifier) SendConfirmation(to notify.Recipient, _ *domain.Appointment, _ string) error {
	if f.fail {
		return notify.ErrSendFailed
	}
	f.sent = append(f.sent, to.Email)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[int64]*catalog.Service{
		1: {ID: 1, Name: "Corte", DurationMinutes: 30, Active: true},
		2: {ID: 2, Name: "Color", DurationMinutes: 60, Active: true},
	}}
}

func defaultDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[int64]*directory.User{
		100: {ID: 100, Name: "Ana", Email: "ana@example.com", Role: "client"},
	}}
}

func newTestUseCase(
	apptRepo *fakeApptRepo,
	profRepo *fakeProfRepo,
	availability *fakeAvailability,
	notifier *fakeNotifier,
) *UseCase {
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return NewUseCase(
		apptRepo,
		profRepo,
		fakeSchedule{},
		availability,
		defaultCatalog(),
		defaultDirectory(),
		nil, // календарь выключен
		n,
		fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_SpecificProfessional(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "Maria", Active: true},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: true}}, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:       100,
		ProfessionalID: ptr.Ptr(int64(1)),
		ServiceIDs:     []int64{1, 2},
		Date:           testDate,
		StartTime:      "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ProfessionalID)
	assert.Equal(t, "Corte + Color", resp.ServiceNames)
	assert.Equal(t, 90, resp.TotalDurationMinutes)
	// Время окончания пересчитано сервером
	assert.Equal(t, "11:30", string(resp.EndTime))
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Len(t, apptRepo.created, 1)
	assert.Equal(t, []string{"ana@example.com"}, notifier.sent)
}

func TestExecute_SlotTakenAtCommitTime(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "Maria", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: false}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:       100,
		ProfessionalID: ptr.Ptr(int64(1)),
		ServiceIDs:     []int64{1},
		Date:           testDate,
		StartTime:      "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, apptRepo.created)
}

func TestExecute_AutoAssignPicksLeastLoaded(t *testing.T) {
	// Оба свободны в 11:00, у A три записи за день, у B одна: выбирается B
	apptRepo := &fakeApptRepo{counts: map[int64]int{1: 3, 2: 1}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "A", Active: true},
		{ID: 2, Name: "B", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: true, 2: true}}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:   100,
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ProfessionalID)
}

func TestExecute_AutoAssignTieBreaksBySmallestID(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{1: 2, 2: 2}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "A", Active: true},
		{ID: 2, Name: "B", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: true, 2: true}}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:   100,
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ProfessionalID)
}

func TestExecute_AutoAssignSkipsBusyProfessionals(t *testing.T) {
	// A наименее загружен, но занят в запрошенный слот
	apptRepo := &fakeApptRepo{counts: map[int64]int{1: 0, 2: 5}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "A", Active: true},
		{ID: 2, Name: "B", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: false, 2: true}}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:   100,
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ProfessionalID)
}

func TestExecute_NoProfessionalAvailable(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "A", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:   100,
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  "11:00",
	})

	assert.ErrorIs(t, err, ErrNoProfessionalAvailable)
}

func TestExecute_UnknownProfessional(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:       100,
		ProfessionalID: ptr.Ptr(int64(99)),
		ServiceIDs:     []int64{1},
		Date:           testDate,
		StartTime:      "11:00",
	})

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_UnknownServiceRejected(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "A", Active: true},
	}}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: true}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:       100,
		ProfessionalID: ptr.Ptr(int64(1)),
		ServiceIDs:     []int64{77},
		Date:           testDate,
		StartTime:      "11:00",
	})

	assert.ErrorIs(t, err, ErrInvalidService)
}

func TestExecute_EmptyServiceListRejected(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeProfRepo{}, &fakeAvailability{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  100,
		Date:      testDate,
		StartTime: "11:00",
	})

	assert.ErrorIs(t, err, ErrInvalidService)
}

func TestExecute_NotificationFailureDoesNotFailCreate(t *testing.T) {
	apptRepo := &fakeApptRepo{counts: map[int64]int{}}
	profRepo := &fakeProfRepo{items: []*domain.Professional{
		{ID: 1, Name: "Maria", Active: true},
	}}
	notifier := &fakeNotifier{fail: true}
	uc := newTestUseCase(apptRepo, profRepo, &fakeAvailability{free: map[int64]bool{1: true}}, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:       100,
		ProfessionalID: ptr.Ptr(int64(1)),
		ServiceIDs:     []int64{1},
		Date:           testDate,
		StartTime:      "10:00",
	})

	// Запись создана, сбой уведомления виден только в диагностике
	require.NoError(t, err)
	require.Len(t, apptRepo.created, 1)
	require.Len(t, resp.SideEffects, 1)
	assert.Equal(t, "client_notification", resp.SideEffects[0].Effect)
	assert.False(t, resp.SideEffects[0].OK)
	assert.NotEmpty(t, resp.SideEffects[0].Reason)
}

func TestNormalizeServiceIDs(t *testing.T) {
	tests := []struct {
		name    string
		in      []int64
		want    []int64
		wantErr bool
	}{
		{"single", []int64{1}, []int64{1}, false},
		{"deduplicates keeping order", []int64{2, 1, 2, 1}, []int64{2, 1}, false},
		{"empty rejected", []int64{}, nil, true},
		{"non-positive rejected", []int64{1, 0}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeServiceIDs(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidService)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
