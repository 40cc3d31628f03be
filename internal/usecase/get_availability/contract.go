package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
)

// AvailabilityPlanner интерфейс планировщика доступности
type AvailabilityPlanner interface {
	DayAvailability(ctx context.Context, professionalID *int64, durationMinutes int, date time.Time) ([]domain.Slot, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetServices(ctx context.Context, serviceIDs []int64) ([]*catalog.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
