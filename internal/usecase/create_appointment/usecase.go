package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SHS-AppointmentService/internal/integrations/catalog"
)

// UseCase use case для создания записи
//
// Запись фиксируется в сериализуемой транзакции: доступность слота
// перепроверяется на свежих данных с блокировкой строк дня, поэтому две
// конкурирующие брони одного слота не могут обе пройти.
type UseCase struct {
	apptRepo     AppointmentRepository
	profRepo     ProfessionalRepository
	schedule     ScheduleProvider
	availability AvailabilityChecker
	catalog      CatalogClient
	directory    DirectoryClient
	calendarSync CalendarSync // nil, если интеграция с календарём выключена
	notifier     Notifier     // nil, если уведомления выключены
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	profRepo ProfessionalRepository,
	schedule ScheduleProvider,
	availability AvailabilityChecker,
	catalog CatalogClient,
	directory DirectoryClient,
	calendarSync CalendarSync,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		profRepo:     profRepo,
		schedule:     schedule,
		availability: availability,
		catalog:      catalog,
		directory:    directory,
		calendarSync: calendarSync,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, professional=%v, services=%v, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	serviceIDs, err := normalizeServiceIDs(req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateAppointment: service normalization failed: %v", err)
		return nil, err
	}

	// 2. Получаем услуги из каталога, считаем суммарную длительность
	services, err := uc.catalog.GetServices(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: unknown service in %v", serviceIDs)
			return nil, fmt.Errorf("%w: %v", ErrInvalidService, err)
		}
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	totalDuration := 0
	names := make([]string, 0, len(services))
	for _, svc := range services {
		totalDuration += svc.DurationMinutes
		names = append(names, svc.Name)
	}
	if totalDuration <= 0 {
		uc.logger.Warn("CreateAppointment: non-positive total duration for services %v", serviceIDs)
		return nil, fmt.Errorf("%w: total duration must be positive", ErrInvalidService)
	}
	serviceNames := strings.Join(names, " + ")

	// 3. Время окончания всегда считается на сервере
	endTime, err := req.StartTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: appointment does not fit the day: %v", err)
		return nil, fmt.Errorf("%w: appointment does not fit into the day", ErrInvalidInput)
	}

	// 4. Конкретный профессионал проверяется до транзакции
	var requested *domain.Professional
	if req.ProfessionalID != nil {
		requested, err = uc.loadProfessional(ctx, *req.ProfessionalID)
		if err != nil {
			return nil, err
		}
	}

	var result *domain.Appointment
	var assigned *domain.Professional

	// 5. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedule, err := uc.schedule.Get(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if requested != nil {
			assigned = requested
			ok, err := uc.availability.IsSlotBookable(txCtx, schedule, requested.ID, totalDuration, req.Date, req.StartTime.Minutes())
			if err != nil {
				uc.logger.Error("CreateAppointment: availability check failed: %v", err)
				return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
			}
			if !ok {
				uc.logger.Warn("CreateAppointment: slot %s %s is taken for professional %d",
					req.Date.Format(domain.DateFormat), req.StartTime, requested.ID)
				return ErrSlotUnavailable
			}
		} else {
			assigned, err = uc.autoAssign(txCtx, schedule, totalDuration, req)
			if err != nil {
				return err
			}
		}

		appt := &domain.Appointment{
			Date:                 req.Date,
			StartTime:            req.StartTime,
			EndTime:              endTime,
			ClientID:             req.ClientID,
			ProfessionalID:       assigned.ID,
			ServiceIDs:           serviceIDs,
			Status:               domain.StatusConfirmed,
			ServiceNames:         serviceNames,
			TotalDurationMinutes: totalDuration,
		}

		result, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d professional=%d", result.ID, assigned.ID)

	// 6. Побочные действия: календарь и письмо, каждое независимо
	sideEffects := uc.runSideEffects(ctx, result, assigned)

	return &Response{
		ID:                   result.ID,
		Date:                 result.Date,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		ClientID:             result.ClientID,
		ProfessionalID:       result.ProfessionalID,
		ProfessionalName:     assigned.Name,
		ServiceIDs:           result.ServiceIDs,
		ServiceNames:         result.ServiceNames,
		TotalDurationMinutes: result.TotalDurationMinutes,
		Status:               string(result.Status),
		CreatedAt:            result.CreatedAt,
		SideEffects:          sideEffects,
	}, nil
}

func (uc *UseCase) loadProfessional(ctx context.Context, id int64) (*domain.Professional, error) {
	prof, err := uc.profRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Warn("CreateAppointment: professional id=%d not found: %v", id, err)
		return nil, ErrProfessionalNotFound
	}
	if !prof.Active {
		uc.logger.Warn("CreateAppointment: professional id=%d is inactive", id)
		return nil, ErrProfessionalNotFound
	}
	return prof, nil
}

// autoAssign подбирает профессионала для запроса "any"
// Из свободных в запрошенный слот выбирается наименее загруженный в этот
// день; при равной загрузке побеждает меньший ID (порядок GetActive)
func (uc *UseCase) autoAssign(ctx context.Context, schedule *domain.BusinessSchedule, totalDuration int, req *Request) (*domain.Professional, error) {
	professionals, err := uc.profRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load professionals: %v", err)
		return nil, fmt.Errorf("%w: failed to load professionals: %v", ErrInternal, err)
	}

	free := make([]*domain.Professional, 0, len(professionals))
	for _, prof := range professionals {
		ok, err := uc.availability.IsSlotBookable(ctx, schedule, prof.ID, totalDuration, req.Date, req.StartTime.Minutes())
		if err != nil {
			uc.logger.Error("CreateAppointment: availability check failed for professional %d: %v", prof.ID, err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if ok {
			free = append(free, prof)
		}
	}

	if len(free) == 0 {
		uc.logger.Warn("CreateAppointment: no professional available for %s %s",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrNoProfessionalAvailable
	}

	counts, err := uc.apptRepo.CountActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to count daily load: %v", err)
		return nil, fmt.Errorf("%w: failed to count daily load: %v", ErrInternal, err)
	}

	best := free[0]
	for _, prof := range free[1:] {
		if counts[prof.ID] < counts[best.ID] {
			best = prof
		}
	}

	uc.logger.Info("CreateAppointment: auto-assigned professional %d (%d appointments that day)",
		best.ID, counts[best.ID])
	return best, nil
}
