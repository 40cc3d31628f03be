package set_day_exception

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/service/exceptions"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

type ExceptionService interface {
	Set(ctx context.Context, userID int64, date time.Time, excType domain.ExceptionType, startTime, endTime types.TimeString) (*exceptions.SetResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
