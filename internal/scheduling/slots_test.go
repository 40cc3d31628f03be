package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

var (
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func openWindow(startMin, endMin int) domain.DayWindow {
	return domain.DayWindow{IsOpen: true, StartMinutes: startMin, EndMinutes: endMin}
}

func TestGenerateSlots_EmptyDay(t *testing.T) {
	// 09:00-20:00, услуга 30 минут, пустой день: 22 слота
	slots := GenerateSlots(openWindow(540, 1200), 30, nil, testDate, testNow)

	require.Len(t, slots, 22)
	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "09:30"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "19:30", EndTime: "20:00"}, slots[21])
}

func TestGenerateSlots_ExcludesBookedSlot(t *testing.T) {
	busy := []domain.BusyInterval{
		{Start: 600, End: 630, Source: domain.BusySourceLocal}, // 10:00-10:30
	}

	slots := GenerateSlots(openWindow(540, 1200), 30, busy, testDate, testNow)

	require.Len(t, slots, 21)
	for _, slot := range slots {
		assert.NotEqual(t, domain.Slot{StartTime: "10:00", EndTime: "10:30"}, slot)
	}
}

func TestGenerateSlots_CustomWindow(t *testing.T) {
	// Окно 14:00-18:00, услуга 60 минут: ровно четыре слота
	slots := GenerateSlots(openWindow(840, 1080), 60, nil, testDate, testNow)

	expected := []domain.Slot{
		{StartTime: "14:00", EndTime: "15:00"},
		{StartTime: "15:00", EndTime: "16:00"},
		{StartTime: "16:00", EndTime: "17:00"},
		{StartTime: "17:00", EndTime: "18:00"},
	}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlots_GridStepsByRequestedDuration(t *testing.T) {
	// Сетка шагает длительностью запроса: для 90 минут в окне 09:00-20:00
	// последний слот 18:00-19:30, а 19:30-21:00 уже не влезает
	slots := GenerateSlots(openWindow(540, 1200), 90, nil, testDate, testNow)

	require.NotEmpty(t, slots)
	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "10:30"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "18:00", EndTime: "19:30"}, slots[len(slots)-1])
	assert.Len(t, slots, 7)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	busy := []domain.BusyInterval{{Start: 630, End: 720}}

	first := GenerateSlots(openWindow(540, 1200), 90, busy, testDate, testNow)
	second := GenerateSlots(openWindow(540, 1200), 90, busy, testDate, testNow)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_TouchingIntervalIsNotCollision(t *testing.T) {
	// Занято 09:30-10:00: выпадает только слот 09:30-10:00,
	// соприкасающиеся с занятым интервалом слоты остаются
	busy := []domain.BusyInterval{{Start: 570, End: 600}}

	slots := GenerateSlots(openWindow(540, 660), 30, busy, testDate, testNow)

	expected := []domain.Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "10:30", EndTime: "11:00"},
	}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlots_TodaySkipsPastSlots(t *testing.T) {
	now := time.Date(2026, 9, 15, 17, 10, 0, 0, time.UTC)

	slots := GenerateSlots(openWindow(540, 1200), 60, nil, testDate, now)

	// До 17:10 все слоты в прошлом; первый допустимый начинается в 18:00
	require.Len(t, slots, 2)
	assert.Equal(t, domain.Slot{StartTime: "18:00", EndTime: "19:00"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "19:00", EndTime: "20:00"}, slots[1])
}

func TestGenerateSlots_PastDate(t *testing.T) {
	now := time.Date(2026, 9, 16, 8, 0, 0, 0, time.UTC)

	slots := GenerateSlots(openWindow(540, 1200), 30, nil, testDate, now)

	assert.Empty(t, slots)
}

func TestGenerateSlots_ClosedWindow(t *testing.T) {
	window := domain.DayWindow{IsOpen: false, ClosureReason: domain.ClosureHoliday}

	slots := GenerateSlots(window, 30, nil, testDate, testNow)

	assert.Empty(t, slots)
}

func TestIsSlotFree(t *testing.T) {
	busy := []domain.BusyInterval{{Start: 600, End: 660}} // 10:00-11:00

	tests := []struct {
		name     string
		start    int
		duration int
		want     bool
	}{
		{"free slot", 540, 30, true},
		{"collides with busy", 630, 30, false},
		{"touches busy end", 660, 30, true},
		{"before window start", 480, 30, false},
		{"past window end", 1190, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotFree(openWindow(540, 1200), tt.start, tt.duration, busy)
			assert.Equal(t, tt.want, got)
		})
	}
}
