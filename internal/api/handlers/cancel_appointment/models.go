package cancel_appointment

// CancelAppointmentRequest тело запроса на отмену записи
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}
