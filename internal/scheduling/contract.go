package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// ScheduleProvider отдает текущее общее расписание салона
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
}

// ExceptionStore интерфейс хранилища исключений расписания
type ExceptionStore interface {
	GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) (*domain.DayException, error)
	GetByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.DayException, error)
}

// HolidayProvider отдает официальные праздники
// Недоступность провайдера деградирует до "праздников нет"
type HolidayProvider interface {
	IsHoliday(ctx context.Context, date time.Time) bool
	HolidaysInRange(ctx context.Context, from, to time.Time) map[string]bool
}

// AppointmentStore интерфейс хранилища записей
type AppointmentStore interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ExternalBusyProvider отдает занятые интервалы внешнего календаря
// Ошибки не возвращает: сбой всегда означает пустой список
type ExternalBusyProvider interface {
	GetBusyIntervals(ctx context.Context, date time.Time) []domain.BusyInterval
}

// ProfessionalStore интерфейс хранилища профессионалов
type ProfessionalStore interface {
	GetActive(ctx context.Context) ([]*domain.Professional, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
