package appointments

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Reschedule(ctx context.Context, id int64, date time.Time, startTime, endTime types.TimeString) error
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetByEmail(ctx context.Context, email string) (*domain.Professional, error)
}

// ScheduleProvider отдает текущее общее расписание салона
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
}

// AvailabilityChecker проверяет слот переноса на свежих данных
type AvailabilityChecker interface {
	IsSlotBookableExcluding(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, date time.Time, startMinutes int, excludeAppointmentID int64) (bool, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
	GetUserByEmail(ctx context.Context, email string) (*directory.User, error)
}

// CalendarSync интерфейс синхронизации с внешним календарём
type CalendarSync interface {
	UpdateEvent(ctx context.Context, eventID string, appt *domain.Appointment, clientName string) bool
	DeleteEvent(ctx context.Context, eventID string) bool
	UpdateEventForUser(ctx context.Context, token *oauth2.Token, eventID string, appt *domain.Appointment, clientName string) bool
	DeleteEventForUser(ctx context.Context, token *oauth2.Token, eventID string) bool
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendCancellation(to notify.Recipient, appt *domain.Appointment) error
	SendReschedule(to notify.Recipient, appt *domain.Appointment) error
}

// NotificationLog журнал отправленных уведомлений
type NotificationLog interface {
	DeleteByAppointment(ctx context.Context, appointmentID int64) error
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
