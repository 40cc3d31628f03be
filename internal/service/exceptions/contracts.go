package exceptions

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
)

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	Upsert(ctx context.Context, exc *domain.DayException) (*domain.DayException, error)
	GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) (*domain.DayException, error)
	Delete(ctx context.Context, professionalID int64, date time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Professional, error)
}

// ScheduleProvider отдает текущее общее расписание салона
type ScheduleProvider interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
}

// DirectoryClient интерфейс клиента DirectoryService
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
}

// CalendarSync интерфейс синхронизации с внешним календарём
type CalendarSync interface {
	DeleteEvent(ctx context.Context, eventID string) bool
	DeleteEventForUser(ctx context.Context, token *oauth2.Token, eventID string) bool
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendProfessionalCancelled(to notify.Recipient, appt *domain.Appointment, whatsApp string) error
}

// NotificationLog журнал отправленных уведомлений
type NotificationLog interface {
	DeleteByAppointment(ctx context.Context, appointmentID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
