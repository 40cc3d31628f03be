package update_business_config

import (
	"context"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

type ScheduleService interface {
	Update(ctx context.Context, sched *domain.BusinessSchedule) (*domain.BusinessSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
