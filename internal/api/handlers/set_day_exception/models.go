package set_day_exception

import (
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/service/exceptions"
)

// SetExceptionRequest тело запроса на установку исключения
type SetExceptionRequest struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// SetExceptionResponse ответ с сохранённым исключением
type SetExceptionResponse struct {
	Date                  string `json:"date"`
	Type                  string `json:"type"`
	StartTime             string `json:"startTime,omitempty"`
	EndTime               string `json:"endTime,omitempty"`
	CancelledAppointments int    `json:"cancelledAppointments"`
}

// FromServiceResult конвертирует результат сервиса в HTTP ответ
func FromServiceResult(result *exceptions.SetResult) *SetExceptionResponse {
	exc := result.Exception
	return &SetExceptionResponse{
		Date:                  exc.Date.Format(domain.DateFormat),
		Type:                  string(exc.Type),
		StartTime:             exc.StartTime.String(),
		EndTime:               exc.EndTime.String(),
		CancelledAppointments: result.CancelledAppointments,
	}
}
