package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

func testBusinessSchedule() *domain.BusinessSchedule {
	return &domain.BusinessSchedule{
		WorkingDays:            []int{1, 2, 3, 4, 5, 6}, // пн-сб
		OpeningTime:            "09:00",
		ClosingTime:            "20:00",
		SlotGranularityMinutes: 30,
	}
}

func TestResolveWindow_RegularWorkingDay(t *testing.T) {
	resolver := NewWindowResolver(newFakeExceptions(), newFakeHolidays())

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, testDate)

	require.NoError(t, err)
	assert.True(t, window.IsOpen)
	assert.Equal(t, 540, window.StartMinutes)
	assert.Equal(t, 1200, window.EndMinutes)
}

func TestResolveWindow_NonWorkingWeekday(t *testing.T) {
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	resolver := NewWindowResolver(newFakeExceptions(), newFakeHolidays())

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, sunday)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
	assert.Equal(t, domain.ClosureNonWorking, window.ClosureReason)
}

func TestResolveWindow_Holiday(t *testing.T) {
	resolver := NewWindowResolver(newFakeExceptions(), newFakeHolidays("2026-09-15"))

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
	assert.Equal(t, domain.ClosureHoliday, window.ClosureReason)
}

func TestResolveWindow_OffExceptionWinsOverHoliday(t *testing.T) {
	// Явное исключение главнее праздника: причина закрытия именно day_off
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           testDate,
		Type:           domain.ExceptionOff,
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays("2026-09-15"))

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
	assert.Equal(t, domain.ClosureDayOff, window.ClosureReason)
}

func TestResolveWindow_NormalExceptionOpensHoliday(t *testing.T) {
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           testDate,
		Type:           domain.ExceptionNormal,
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays("2026-09-15"))

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, testDate)

	require.NoError(t, err)
	assert.True(t, window.IsOpen)
	assert.Equal(t, 540, window.StartMinutes)
	assert.Equal(t, 1200, window.EndMinutes)
}

func TestResolveWindow_CustomExceptionOnNonWorkingDay(t *testing.T) {
	// Особое окно открывает день даже вне рабочих дней салона
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           sunday,
		Type:           domain.ExceptionCustom,
		StartTime:      "14:00",
		EndTime:        "18:00",
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays())

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, sunday)

	require.NoError(t, err)
	assert.True(t, window.IsOpen)
	assert.Equal(t, 840, window.StartMinutes)
	assert.Equal(t, 1080, window.EndMinutes)
}

func TestResolveWindow_ExceptionOfOtherProfessionalIgnored(t *testing.T) {
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 2,
		Date:           testDate,
		Type:           domain.ExceptionOff,
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays())

	window, err := resolver.ResolveWindow(context.Background(), testBusinessSchedule(), 1, testDate)

	require.NoError(t, err)
	assert.True(t, window.IsOpen)
}

func TestResolveWindowBulk(t *testing.T) {
	// Сентябрь 2026: исключение off 10-го, праздник 21-го
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Type:           domain.ExceptionOff,
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays("2026-09-21"))

	windows, err := resolver.ResolveWindowBulk(context.Background(), testBusinessSchedule(), 1, 2026, time.September)

	require.NoError(t, err)
	require.Len(t, windows, 30)

	assert.False(t, windows[10].IsOpen)
	assert.Equal(t, domain.ClosureDayOff, windows[10].ClosureReason)

	assert.False(t, windows[21].IsOpen)
	assert.Equal(t, domain.ClosureHoliday, windows[21].ClosureReason)

	// 13-е и 27-е: воскресенья
	assert.Equal(t, domain.ClosureNonWorking, windows[13].ClosureReason)
	assert.Equal(t, domain.ClosureNonWorking, windows[27].ClosureReason)

	assert.True(t, windows[15].IsOpen)
}

func TestResolveBusinessWindow_IgnoresPersonalExceptions(t *testing.T) {
	// На уровне салона персональные исключения не действуют
	exceptions := newFakeExceptions(&domain.DayException{
		ProfessionalID: 1,
		Date:           testDate,
		Type:           domain.ExceptionOff,
	})
	resolver := NewWindowResolver(exceptions, newFakeHolidays())

	window := resolver.ResolveBusinessWindow(context.Background(), testBusinessSchedule(), testDate)

	assert.True(t, window.IsOpen)
}
