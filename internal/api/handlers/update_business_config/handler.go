package update_business_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	scheduleService "github.com/m04kA/SHS-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToDomainSchedule())
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidSchedule):
			h.logger.Warn("PUT /admin/config - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /admin/config - Failed to update schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/config - Schedule updated: days=%v, window=%s-%s",
		result.WorkingDays, result.OpeningTime, result.ClosingTime)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSchedule(result))
}
