package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
)

// Request модель запроса доступности на месяц
type Request struct {
	ProfessionalID *int64  // nil означает "любой профессионал"
	ServiceIDs     []int64 // Услуги будущей записи (минимум одна)
	Year           int
	Month          time.Month
}

// Response модель ответа со статусами дней месяца
// Ключ: день месяца (1..31)
type Response struct {
	Year           int
	Month          time.Month
	ProfessionalID *int64
	Days           map[int]domain.DayStatus
}

// UseCase use case получения доступности на месяц
type UseCase struct {
	planner AvailabilityPlanner
	catalog CatalogClient
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(planner AvailabilityPlanner, catalog CatalogClient, logger Logger) *UseCase {
	return &UseCase{
		planner: planner,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute выполняет use case получения доступности на месяц
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	services, err := uc.catalog.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetMonthAvailability: unknown service in %v", req.ServiceIDs)
			return nil, fmt.Errorf("%w: %v", ErrInvalidService, err)
		}
		uc.logger.Error("GetMonthAvailability: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMinutes
	}
	if totalDuration <= 0 {
		return nil, fmt.Errorf("%w: total duration must be positive", ErrInvalidService)
	}

	days, err := uc.planner.MonthAvailability(ctx, req.ProfessionalID, totalDuration, req.Year, req.Month)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: planner failed: %v", err)
		return nil, fmt.Errorf("%w: failed to compute month availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetMonthAvailability: %d-%02d professional=%v duration=%d",
		req.Year, int(req.Month), req.ProfessionalID, totalDuration)

	return &Response{
		Year:           req.Year,
		Month:          req.Month,
		ProfessionalID: req.ProfessionalID,
		Days:           days,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidService)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service id must be positive", ErrInvalidService)
		}
	}
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month out of range", ErrInvalidInput)
	}
	return nil
}
