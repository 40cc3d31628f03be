package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

type AppointmentService interface {
	Reschedule(ctx context.Context, appointmentID, userID int64, newDate time.Time, newStartTime types.TimeString) (*models.ModifyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
