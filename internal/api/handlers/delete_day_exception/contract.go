package delete_day_exception

import (
	"context"
	"time"
)

type ExceptionService interface {
	Delete(ctx context.Context, userID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
