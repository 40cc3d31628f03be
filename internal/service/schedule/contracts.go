package schedule

import (
	"context"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс хранилища расписания салона
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
	Upsert(ctx context.Context, sched *domain.BusinessSchedule) (*domain.BusinessSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
