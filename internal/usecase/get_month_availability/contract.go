package get_month_availability

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
)

// AvailabilityPlanner интерфейс планировщика доступности
type AvailabilityPlanner interface {
	MonthAvailability(ctx context.Context, professionalID *int64, durationMinutes int, year int, month time.Month) (map[int]domain.DayStatus, error)
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
