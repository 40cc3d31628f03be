package get_availability

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// Request модель запроса доступности на день
type Request struct {
	ProfessionalID *int64    // nil означает "любой профессионал"
	ServiceIDs     []int64   // Услуги будущей записи (минимум одна)
	Date           time.Time // Запрошенная дата
}

// Response модель ответа со свободными слотами дня
type Response struct {
	Date                 time.Time
	ProfessionalID       *int64
	TotalDurationMinutes int
	Slots                []domain.Slot
}
