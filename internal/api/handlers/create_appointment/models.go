package create_appointment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SHS-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// CreateAppointmentRequest тело запроса на создание записи
// professionalId принимает число или строку "any"
type CreateAppointmentRequest struct {
	ProfessionalID json.RawMessage `json:"professionalId"`
	ServiceIDs     []int64         `json:"serviceIds"`
	Date           string          `json:"date"`
	StartTime      string          `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	professionalID, err := parseProfessionalID(r.ProfessionalID)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		ServiceIDs:     r.ServiceIDs,
		Date:           date,
		StartTime:      startTime,
	}, nil
}

// parseProfessionalID принимает число, строку "any" или null
func parseProfessionalID(raw json.RawMessage) (*int64, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == `"any"` {
		return nil, nil
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("invalid professionalId: %w", err)
	}
	if id <= 0 {
		return nil, fmt.Errorf("invalid professionalId: must be positive")
	}
	return &id, nil
}

// SideEffectView результат побочного действия в ответе API
type SideEffectView struct {
	Effect string `json:"effect"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// AppointmentResponse ответ с созданной записью
type AppointmentResponse struct {
	ID                   int64            `json:"id"`
	Date                 string           `json:"date"`
	StartTime            string           `json:"startTime"`
	EndTime              string           `json:"endTime"`
	ClientID             int64            `json:"clientId"`
	ProfessionalID       int64            `json:"professionalId"`
	ProfessionalName     string           `json:"professionalName"`
	ServiceIDs           []int64          `json:"serviceIds"`
	ServiceNames         string           `json:"serviceNames"`
	TotalDurationMinutes int              `json:"totalDurationMinutes"`
	Status               string           `json:"status"`
	CreatedAt            time.Time        `json:"createdAt"`
	SideEffects          []SideEffectView `json:"sideEffects,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(result *createAppointment.Response) *AppointmentResponse {
	sideEffects := make([]SideEffectView, 0, len(result.SideEffects))
	for _, se := range result.SideEffects {
		sideEffects = append(sideEffects, SideEffectView{Effect: se.Effect, OK: se.OK, Reason: se.Reason})
	}

	return &AppointmentResponse{
		ID:                   result.ID,
		Date:                 result.Date.Format(domain.DateFormat),
		StartTime:            result.StartTime.String(),
		EndTime:              result.EndTime.String(),
		ClientID:             result.ClientID,
		ProfessionalID:       result.ProfessionalID,
		ProfessionalName:     result.ProfessionalName,
		ServiceIDs:           result.ServiceIDs,
		ServiceNames:         result.ServiceNames,
		TotalDurationMinutes: result.TotalDurationMinutes,
		Status:               result.Status,
		CreatedAt:            result.CreatedAt,
		SideEffects:          sideEffects,
	}
}
