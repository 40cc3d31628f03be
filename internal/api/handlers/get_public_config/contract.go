package get_public_config

import (
	"context"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

type ScheduleService interface {
	Get(ctx context.Context) (*domain.BusinessSchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
