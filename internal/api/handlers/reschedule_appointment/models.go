package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// RescheduleAppointmentRequest тело запроса на перенос записи
type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// Parse валидирует и разбирает дату и время переноса
func (r *RescheduleAppointmentRequest) Parse() (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date: %w", err)
	}

	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return time.Time{}, "", fmt.Errorf("invalid start time: %w", err)
	}

	return date, startTime, nil
}
