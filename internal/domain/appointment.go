package domain

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a salon appointment
type Appointment struct {
	ID             int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString // Всегда пересчитывается на сервере: startTime + сумма длительностей
	ClientID       int64
	ProfessionalID int64
	ServiceIDs     []int64
	Status         AppointmentStatus

	// Denormalized data for history and notifications
	ServiceNames         string // "Corte + Color"
	TotalDurationMinutes int

	// External calendar event references (optional, best-effort sync)
	BusinessEventID     *string
	ClientEventID       *string
	ProfessionalEventID *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeModified returns true if the appointment may still be cancelled or rescheduled
func (a *Appointment) CanBeModified() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// StartsAt возвращает момент начала записи (дата + время начала)
func (a *Appointment) StartsAt() time.Time {
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, a.Date.Location()).
		Add(time.Duration(a.StartTime.Minutes()) * time.Minute)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	ProfessionalID  *int64     // Фильтр по профессионалу (опционально)
	ClientID        *int64     // Фильтр по клиенту (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	IncludeInactive bool       // Включать ли отменённые записи
}
