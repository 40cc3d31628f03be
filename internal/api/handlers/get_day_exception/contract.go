package get_day_exception

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

type ExceptionService interface {
	Get(ctx context.Context, userID int64, date time.Time) (*domain.DayException, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
