package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// NotificationLog журнал отправленных уведомлений
type NotificationLog interface {
	Exists(ctx context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error)
	MarkSent(ctx context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendReminder(to notify.Recipient, appt *domain.Appointment, reminderType domain.NotificationType) error
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
