package create_appointment

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	CountActiveByDate(ctx context.Context, date time.Time) (map[int64]int, error)
	UpdateEventIDs(ctx context.Context, id int64, businessEventID, clientEventID, professionalEventID *string) error
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetActive(ctx context.Context) ([]*domain.Professional, error)
}

// ScheduleProvider отдает текущее общее расписание салона
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
}

// AvailabilityChecker проверяет один конкретный слот перед записью
// Повторная проверка выполняется внутри транзакции на свежих данных
type AvailabilityChecker interface {
	IsSlotBookable(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, date time.Time, startMinutes int) (bool, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetServices(ctx context.Context, serviceIDs []int64) ([]*catalog.Service, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
	GetUserByEmail(ctx context.Context, email string) (*directory.User, error)
}

// CalendarSync интерфейс синхронизации с внешним календарём
// Все методы best-effort: сбой фиксируется в диагностике, запись не откатывается
type CalendarSync interface {
	CreateEvent(ctx context.Context, appt *domain.Appointment, clientName string) string
	CreateEventForUser(ctx context.Context, token *oauth2.Token, appt *domain.Appointment, clientName string) string
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendConfirmation(to notify.Recipient, appt *domain.Appointment, professionalName string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
