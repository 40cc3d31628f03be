package get_day_exception

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SHS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/service/exceptions"
)

const (
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

// Handle GET /api/v1/exceptions?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /exceptions - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	exc, err := h.service.Get(r.Context(), userID, date)
	if err != nil {
		switch {
		case errors.Is(err, exceptions.ErrProfessionalNotFound):
			h.logger.Warn("GET /exceptions - Professional not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /exceptions - Failed to get exception: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отсутствие исключения отдаётся как null
	if exc == nil {
		handlers.RespondJSON(w, http.StatusOK, (*ExceptionView)(nil))
		return
	}

	h.logger.Info("GET /exceptions - Exception retrieved: user_id=%d, date=%s, type=%s",
		userID, exc.Date.Format(domain.DateFormat), exc.Type)
	handlers.RespondJSON(w, http.StatusOK, FromDomainException(exc))
}
