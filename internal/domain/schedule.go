package domain

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// BusinessSchedule represents the salon-wide working schedule
// Единственная запись в БД; при отсутствии создаётся лениво с дефолтами
type BusinessSchedule struct {
	ID                     int64
	WorkingDays            []int // Дни недели: 0=воскресенье ... 6=суббота
	OpeningTime            types.TimeString
	ClosingTime            types.TimeString
	SlotGranularityMinutes int
	WhatsAppNumber         string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsWorkingDay returns true if the weekday is part of the configured working days
func (s *BusinessSchedule) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// DefaultBusinessSchedule возвращает расписание по умолчанию (пн-сб, 09:00-20:00)
func DefaultBusinessSchedule() *BusinessSchedule {
	return &BusinessSchedule{
		WorkingDays:            []int{1, 2, 3, 4, 5, 6},
		OpeningTime:            DefaultOpeningTime,
		ClosingTime:            DefaultClosingTime,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
	}
}
