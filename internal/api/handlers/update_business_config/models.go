package update_business_config

import (
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// UpdateConfigRequest тело запроса на обновление расписания салона
type UpdateConfigRequest struct {
	WorkingDays            []int  `json:"workingDays"`
	OpeningTime            string `json:"openingTime"`
	ClosingTime            string `json:"closingTime"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	WhatsAppNumber         string `json:"whatsappNumber"`
}

// ToDomainSchedule конвертирует HTTP запрос в доменную модель
func (r *UpdateConfigRequest) ToDomainSchedule() *domain.BusinessSchedule {
	return &domain.BusinessSchedule{
		WorkingDays:            r.WorkingDays,
		OpeningTime:            types.TimeString(r.OpeningTime),
		ClosingTime:            types.TimeString(r.ClosingTime),
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		WhatsAppNumber:         r.WhatsAppNumber,
	}
}

// ConfigResponse ответ с сохранённым расписанием
type ConfigResponse struct {
	WorkingDays            []int  `json:"workingDays"`
	OpeningTime            string `json:"openingTime"`
	ClosingTime            string `json:"closingTime"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	WhatsAppNumber         string `json:"whatsappNumber"`
}

// FromDomainSchedule конвертирует доменную модель в HTTP ответ
func FromDomainSchedule(sched *domain.BusinessSchedule) *ConfigResponse {
	return &ConfigResponse{
		WorkingDays:            sched.WorkingDays,
		OpeningTime:            sched.OpeningTime.String(),
		ClosingTime:            sched.ClosingTime.String(),
		SlotGranularityMinutes: sched.SlotGranularityMinutes,
		WhatsAppNumber:         sched.WhatsAppNumber,
	}
}
