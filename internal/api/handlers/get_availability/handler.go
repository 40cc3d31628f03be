package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SHS-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidServices       = "некорректный список услуг"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&serviceIds=1,2&professionalId=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ids: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServices)
		return
	}

	// professionalId="any" или отсутствие параметра означают любого профессионала
	var professionalID *int64
	if raw := query.Get("professionalId"); raw != "" && raw != "any" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid professional ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)
			return
		}
		professionalID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ProfessionalID: professionalID,
		ServiceIDs:     serviceIDs,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidService):
			h.logger.Warn("GET /availability - Invalid services: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServices)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability computed: date=%s, slots=%d",
		query.Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs разбирает список ID услуг из query параметра "1,2,3"
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, errors.New("serviceIds is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
