package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/api/handlers"
	getMonthAvailability "github.com/m04kA/SHS-AppointmentService/internal/usecase/get_month_availability"
)

const (
	msgInvalidYearMonth      = "некорректные год или месяц, ожидается year=YYYY и month=0..11"
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidServices       = "некорректный список услуг"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability-month?year=2026&month=8&serviceIds=1,2&professionalId=any
// Месяц приходит 0-индексированным (0=январь), как и в дневном endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("GET /availability-month - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYearMonth)
		return
	}

	monthIndex, err := strconv.Atoi(query.Get("month"))
	if err != nil || monthIndex < 0 || monthIndex > 11 {
		h.logger.Warn("GET /availability-month - Invalid month: %q", query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidYearMonth)
		return
	}

	serviceIDs, err := parseServiceIDs(query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /availability-month - Invalid service ids: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServices)
		return
	}

	var professionalID *int64
	if raw := query.Get("professionalId"); raw != "" && raw != "any" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability-month - Invalid professional ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)
			return
		}
		professionalID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		ProfessionalID: professionalID,
		ServiceIDs:     serviceIDs,
		Year:           year,
		Month:          time.Month(monthIndex + 1),
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrInvalidService):
			h.logger.Warn("GET /availability-month - Invalid services: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServices)

		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability-month - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidYearMonth)

		default:
			h.logger.Error("GET /availability-month - Failed to compute availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Ключи ответа: день месяца как строка
	days := make(map[string]string, len(result.Days))
	for day, status := range result.Days {
		days[strconv.Itoa(day)] = string(status)
	}

	h.logger.Info("GET /availability-month - Month computed: year=%d, month=%d, days=%d",
		year, monthIndex, len(days))
	handlers.RespondJSON(w, http.StatusOK, days)
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
