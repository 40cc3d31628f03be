package models

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// AppointmentResponse представление записи для ответа API
type AppointmentResponse struct {
	ID                   int64            `json:"id"`
	Date                 time.Time        `json:"date"`
	StartTime            types.TimeString `json:"startTime"`
	EndTime              types.TimeString `json:"endTime"`
	ClientID             int64            `json:"clientId"`
	ProfessionalID       int64            `json:"professionalId"`
	ServiceIDs           []int64          `json:"serviceIds"`
	ServiceNames         string           `json:"serviceNames"`
	TotalDurationMinutes int              `json:"totalDurationMinutes"`
	Status               string           `json:"status"`
	CancellationReason   *string          `json:"cancellationReason,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// SideEffectView результат побочного действия в ответе API
type SideEffectView struct {
	Effect string `json:"effect"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ModifyResponse ответ на отмену или перенос записи
type ModifyResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	SideEffects []SideEffectView     `json:"sideEffects,omitempty"`
}

// FromDomainAppointment конвертирует доменную запись в ответ API
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   appt.ID,
		Date:                 appt.Date,
		StartTime:            appt.StartTime,
		EndTime:              appt.EndTime,
		ClientID:             appt.ClientID,
		ProfessionalID:       appt.ProfessionalID,
		ServiceIDs:           appt.ServiceIDs,
		ServiceNames:         appt.ServiceNames,
		TotalDurationMinutes: appt.TotalDurationMinutes,
		Status:               string(appt.Status),
		CancellationReason:   appt.CancellationReason,
		CreatedAt:            appt.CreatedAt,
	}
}

// FromSideEffects конвертирует результаты побочных действий
func FromSideEffects(results []domain.SideEffectResult) []SideEffectView {
	views := make([]SideEffectView, 0, len(results))
	for _, r := range results {
		views = append(views, SideEffectView{Effect: r.Effect, OK: r.OK, Reason: r.Reason})
	}
	return views
}
