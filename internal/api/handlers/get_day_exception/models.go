package get_day_exception

import (
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// ExceptionView исключение расписания в ответе API
type ExceptionView struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// FromDomainException конвертирует доменное исключение в ответ API
func FromDomainException(exc *domain.DayException) *ExceptionView {
	if exc == nil {
		return nil
	}
	return &ExceptionView{
		Date:      exc.Date.Format(domain.DateFormat),
		Type:      string(exc.Type),
		StartTime: exc.StartTime.String(),
		EndTime:   exc.EndTime.String(),
	}
}
