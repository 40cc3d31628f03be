package get_availability

import (
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SHS-AppointmentService/internal/usecase/get_availability"
)

// SlotView свободный слот в ответе API
type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse ответ со свободными слотами дня
type AvailabilityResponse struct {
	Date                 string     `json:"date"`
	ProfessionalID       *int64     `json:"professionalId,omitempty"`
	TotalDurationMinutes int        `json:"totalDurationMinutes"`
	Slots                []SlotView `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(result *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotView, 0, len(result.Slots))
	for _, slot := range result.Slots {
		slots = append(slots, SlotView{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		Date:                 result.Date.Format(domain.DateFormat),
		ProfessionalID:       result.ProfessionalID,
		TotalDurationMinutes: result.TotalDurationMinutes,
		Slots:                slots,
	}
}
