package create_appointment

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64            // ID клиента (из заголовка аутентификации)
	ProfessionalID *int64           // ID профессионала; nil означает "любой"
	ServiceIDs     []int64          // Услуги, входящие в запись (минимум одна)
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID                   int64
	Date                 time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	ClientID             int64
	ProfessionalID       int64
	ProfessionalName     string
	ServiceIDs           []int64
	ServiceNames         string
	TotalDurationMinutes int
	Status               string
	CreatedAt            time.Time

	// Результаты побочных действий: запись уже создана, даже если
	// часть из них не удалась
	SideEffects []domain.SideEffectResult
}
