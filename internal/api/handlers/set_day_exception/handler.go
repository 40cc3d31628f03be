package set_day_exception

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SHS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/service/exceptions"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProfessionalNotFound = "профессионал не найден"
	msgUnauthorized         = "требуется аутентификация"
)

type Handler struct {
	service ExceptionService
	logger  Logger
}

func NewHandler(service ExceptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SetExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /exceptions - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Set(r.Context(), userID, date,
		domain.ExceptionType(req.Type), types.TimeString(req.StartTime), types.TimeString(req.EndTime))
	if err != nil {
		switch {
		case errors.Is(err, exceptions.ErrProfessionalNotFound):
			h.logger.Warn("POST /exceptions - Professional not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, exceptions.ErrInvalidInput):
			h.logger.Warn("POST /exceptions - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /exceptions - Failed to set exception: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /exceptions - Exception saved: user_id=%d, date=%s, type=%s, cancelled=%d",
		userID, req.Date, req.Type, result.CancelledAppointments)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
