package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
)

// UseCase use case получения свободных слотов на день
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

// Execute выполняет use case получения доступности на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	totalDuration, err := uc.totalDuration(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	slots, err := uc.planner.DayAvailability(ctx, req.ProfessionalID, totalDuration, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: planner failed: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: date=%s professional=%v duration=%d slots=%d",
		req.Date.Format(domain.DateFormat), req.ProfessionalID, totalDuration, len(slots))

	return &Response{
		Date:                 req.Date,
		ProfessionalID:       req.ProfessionalID,
		TotalDurationMinutes: totalDuration,
		Slots:                slots,
	}, nil
}

// totalDuration суммирует длительность запрошенных услуг по каталогу
func (uc *UseCase) totalDuration(ctx context.Context, serviceIDs []int64) (int, error) {
	services, err := uc.catalog.GetServices(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: unknown service in %v", serviceIDs)
			return 0, fmt.Errorf("%w: %v", ErrInvalidService, err)
		}
		uc.logger.Error("GetAvailability: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: total duration must be positive", ErrInvalidService)
	}

	return total, nil
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
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
