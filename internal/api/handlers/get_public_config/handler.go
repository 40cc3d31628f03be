package get_public_config

import (
	"net/http"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
)

// PublicConfigResponse публичная часть конфигурации салона
// Наружу уходит только контактный номер, расписание остаётся внутренним
type PublicConfigResponse struct {
	WhatsAppNumber string `json:"whatsappNumber"`
}

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

// Handle GET /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /config - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PublicConfigResponse{
		WhatsAppNumber: schedule.WhatsAppNumber,
	})
}
