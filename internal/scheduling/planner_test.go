package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/ptr"
)

func newTestPlanner(
	exceptions *fakeExceptions,
	holidays *fakeHolidays,
	appointments *fakeAppointments,
	professionals *fakeProfessionals,
	external ExternalBusyProvider,
	now time.Time,
) *Planner {
	return NewPlanner(
		NewWindowResolver(exceptions, holidays),
		NewBusyAggregator(appointments, external, nopLogger{}),
		professionals,
		&fakeSchedule{schedule: testBusinessSchedule()},
		&fakeClock{now: now},
		nopLogger{},
	)
}

func activeRoster(ids ...int64) *fakeProfessionals {
	profs := make([]*domain.Professional, 0, len(ids))
	for _, id := range ids {
		profs = append(profs, &domain.Professional{ID: id, Active: true})
	}
	return &fakeProfessionals{items: profs}
}

func TestDayAvailability_SpecificProfessional(t *testing.T) {
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), appointments, activeRoster(1), nil, testNow)

	slots, err := planner.DayAvailability(context.Background(), ptr.Ptr(int64(1)), 30, testDate)

	require.NoError(t, err)
	require.Len(t, slots, 21)
	for _, slot := range slots {
		assert.NotEqual(t, domain.Slot{StartTime: "10:00", EndTime: "10:30"}, slot)
	}
}

func TestDayAvailability_CancelledAppointmentDoesNotBlock(t *testing.T) {
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusCancelled},
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), appointments, activeRoster(1), nil, testNow)

	slots, err := planner.DayAvailability(context.Background(), ptr.Ptr(int64(1)), 30, testDate)

	require.NoError(t, err)
	assert.Len(t, slots, 22)
}

func TestDayAvailability_HolidayReturnsEmpty(t *testing.T) {
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays("2026-09-15"), &fakeAppointments{}, activeRoster(1), nil, testNow)

	slots, err := planner.DayAvailability(context.Background(), ptr.Ptr(int64(1)), 30, testDate)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDayAvailability_ExternalEventBlocksSlots(t *testing.T) {
	external := &fakeExternalBusy{intervals: []domain.BusyInterval{
		{Start: 0, End: domain.MinutesPerDay, Source: domain.BusySourceExternal}, // событие на весь день
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), &fakeAppointments{}, activeRoster(1), external, testNow)

	slots, err := planner.DayAvailability(context.Background(), ptr.Ptr(int64(1)), 30, testDate)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDayAvailability_AnyUnionDedupedAndSorted(t *testing.T) {
	// Мастер 1 занят утром, мастер 2 днём: объединение покрывает всё без дублей
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "09:00", EndTime: "14:00", Status: domain.StatusConfirmed},
		{ProfessionalID: 2, Date: testDate, StartTime: "14:00", EndTime: "20:00", Status: domain.StatusConfirmed},
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), appointments, activeRoster(1, 2), nil, testNow)

	slots, err := planner.DayAvailability(context.Background(), nil, 60, testDate)

	require.NoError(t, err)
	// Мастер 1 свободен 14:00-20:00 (6 слотов), мастер 2 свободен 09:00-14:00 (5 слотов)
	require.Len(t, slots, 11)
	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "10:00"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "19:00", EndTime: "20:00"}, slots[len(slots)-1])

	// Отсортировано строго по возрастанию и без дублей
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].StartTime.Minutes(), slots[i].StartTime.Minutes())
	}
}

func TestDayAvailability_InvalidDuration(t *testing.T) {
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), &fakeAppointments{}, activeRoster(1), nil, testNow)

	_, err := planner.DayAvailability(context.Background(), ptr.Ptr(int64(1)), 0, testDate)

	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestMonthAvailability_Statuses(t *testing.T) {
	// Сейчас 10 сентября 2026. Исключение off 18-го, праздник 21-го,
	// 15-е полностью занято одной длинной записью
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Type:           domain.ExceptionOff,
	})
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "09:00", EndTime: "20:00", Status: domain.StatusConfirmed},
	}}
	planner := newTestPlanner(exceptions, newFakeHolidays("2026-09-21"), appointments, activeRoster(1), nil, now)

	statuses, err := planner.MonthAvailability(context.Background(), ptr.Ptr(int64(1)), 30, 2026, time.September)

	require.NoError(t, err)
	require.Len(t, statuses, 30)

	assert.Equal(t, domain.DayPast, statuses[1])
	assert.Equal(t, domain.DayPast, statuses[9])
	assert.Equal(t, domain.DayAvailable, statuses[11])
	assert.Equal(t, domain.DayClosed, statuses[13]) // воскресенье
	assert.Equal(t, domain.DayFull, statuses[15])
	assert.Equal(t, domain.DayFranco, statuses[18]) // франко профессионала
	assert.Equal(t, domain.DayFranco, statuses[21]) // праздник
}

func TestMonthAvailability_PastCheckedBeforeClosure(t *testing.T) {
	// Прошедший праздник показывается как past, а не franco
	now := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays("2026-09-21"), &fakeAppointments{}, activeRoster(1), nil, now)

	statuses, err := planner.MonthAvailability(context.Background(), ptr.Ptr(int64(1)), 30, 2026, time.September)

	require.NoError(t, err)
	assert.Equal(t, domain.DayPast, statuses[21])
}

func TestMonthAvailability_AnyAggregatesRoster(t *testing.T) {
	// 15-е занято только у мастера 1: на уровне салона день остаётся доступным
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "09:00", EndTime: "20:00", Status: domain.StatusConfirmed},
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), appointments, activeRoster(1, 2), nil, now)

	statuses, err := planner.MonthAvailability(context.Background(), nil, 30, 2026, time.September)

	require.NoError(t, err)
	assert.Equal(t, domain.DayAvailable, statuses[15])
}

func TestIsSlotBookable(t *testing.T) {
	appointments := &fakeAppointments{items: []*domain.Appointment{
		{ProfessionalID: 1, Date: testDate, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}}
	planner := newTestPlanner(newFakeExceptions(), newFakeHolidays(), appointments, activeRoster(1), nil, testNow)
	schedule := testBusinessSchedule()

	tests := []struct {
		name  string
		start int
		want  bool
	}{
		{"free slot bookable", 540, true},
		{"busy slot not bookable", 600, false},
		{"overlapping slot not bookable", 630, false},
		{"slot after busy bookable", 660, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := planner.IsSlotBookable(context.Background(), schedule, 1, 60, testDate, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
