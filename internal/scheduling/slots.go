package scheduling

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// GenerateSlots генерирует свободные слоты дня под запрошенную длительность
//
// Сетка шагает от начала окна с шагом ровно в durationMinutes: размер шага
// задаётся длительностью текущего запроса, а не фиксированным глобальным тиком.
// Две услуги разной длительности дают разные сетки на один и тот же день;
// это осознанный выбор в пользу простоты, а не максимальной упаковки.
//
// Кандидат пересекается с занятым интервалом [b.Start, b.End) только при
// настоящем наложении: соприкосновение границ пересечением не считается.
//
// Для сегодняшней даты слоты, начинающиеся раньше текущей минуты, отбрасываются.
func GenerateSlots(window domain.DayWindow, durationMinutes int, busy []domain.BusyInterval, date time.Time, now time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if !window.IsOpen || durationMinutes <= 0 {
		return slots
	}
	if isDateInPast(date, now) {
		return slots
	}

	// Для сегодняшнего дня считаем минимальную допустимую минуту начала
	minStart := -1
	if isSameDay(date, now) {
		minStart = now.Hour()*60 + now.Minute()
	}

	for start := window.StartMinutes; start+durationMinutes <= window.EndMinutes; start += durationMinutes {
		end := start + durationMinutes

		if start < minStart {
			continue
		}
		if collides(start, end, busy) {
			continue
		}

		slots = append(slots, domain.Slot{
			StartTime: types.NewTimeStringFromMinutes(start),
			EndTime:   types.NewTimeStringFromMinutes(end),
		})
	}

	return slots
}

// IsSlotFree проверяет один конкретный слот против занятых интервалов и окна
// Используется транзакцией бронирования для повторной проверки перед записью
func IsSlotFree(window domain.DayWindow, startMinutes, durationMinutes int, busy []domain.BusyInterval) bool {
	if !window.IsOpen || durationMinutes <= 0 {
		return false
	}

	end := startMinutes + durationMinutes
	if startMinutes < window.StartMinutes || end > window.EndMinutes {
		return false
	}

	return !collides(startMinutes, end, busy)
}

func collides(start, end int, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func isDateInPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return date.Before(today)
}
