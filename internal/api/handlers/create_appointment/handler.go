package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SHS-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SHS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidService          = "услуга не найдена или неактивна"
	msgProfessionalNotFound    = "профессионал не найден"
	msgNoProfessionalAvailable = "нет свободных профессионалов на выбранное время"
	msgSlotUnavailable         = "выбранный временной слот недоступен"
	msgInvalidInput            = "некорректные данные запроса"
	msgUnauthorized            = "требуется аутентификация"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrNoProfessionalAvailable):
			h.logger.Warn("POST /appointments - No professional available: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgNoProfessionalAvailable)

		case errors.Is(err, createAppointment.ErrProfessionalNotFound):
			h.logger.Warn("POST /appointments - Professional not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createAppointment.ErrInvalidService):
			h.logger.Warn("POST /appointments - Invalid service: client_id=%d, services=%v", clientID, req.ServiceIDs)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, professional_id=%d",
		result.ID, clientID, result.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
