package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/schedule"
)

// Service кеширующий доступ к общему расписанию салона
//
// Расписание читается на каждый расчёт доступности, а меняется редко и
// только через админский путь, поэтому живёт в памяти до явной
// инвалидации. Никакого фонового обновления: после Update кеш сбрасывается
// и первая следующая читка идёт в БД.
type Service struct {
	repo   ScheduleRepository
	logger Logger

	mu     sync.RWMutex
	cached *domain.BusinessSchedule
}

// NewService создает сервис расписания
func NewService(repo ScheduleRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает текущее расписание салона
// При отсутствии строки в БД создаётся расписание по умолчанию
func (s *Service) Get(ctx context.Context) (*domain.BusinessSchedule, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	sched, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Error("Schedule.Get: repository error: %v", err)
			return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
		}

		// Ленивая инициализация дефолтами
		s.logger.Info("Schedule.Get: no stored schedule, creating defaults")
		sched, err = s.repo.Upsert(ctx, domain.DefaultBusinessSchedule())
		if err != nil {
			s.logger.Error("Schedule.Get: failed to persist defaults: %v", err)
			return nil, fmt.Errorf("%w: failed to create default schedule: %v", ErrInternal, err)
		}
	}

	s.mu.Lock()
	s.cached = sched
	s.mu.Unlock()

	return sched, nil
}

// Update сохраняет новое расписание и сбрасывает кеш
func (s *Service) Update(ctx context.Context, sched *domain.BusinessSchedule) (*domain.BusinessSchedule, error) {
	if err := validateSchedule(sched); err != nil {
		s.logger.Warn("Schedule.Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Upsert(ctx, sched)
	if err != nil {
		s.logger.Error("Schedule.Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to save schedule: %v", ErrInternal, err)
	}

	s.Invalidate()
	s.logger.Info("Schedule.Update: schedule saved, cache invalidated")

	return updated, nil
}

// Invalidate сбрасывает кеш расписания
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func validateSchedule(sched *domain.BusinessSchedule) error {
	if sched == nil {
		return fmt.Errorf("%w: schedule is required", ErrInvalidSchedule)
	}
	if len(sched.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidSchedule)
	}
	for _, d := range sched.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day %d out of range", ErrInvalidSchedule, d)
		}
	}
	if err := sched.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid opening time: %v", ErrInvalidSchedule, err)
	}
	if err := sched.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closing time: %v", ErrInvalidSchedule, err)
	}
	if !sched.OpeningTime.IsBefore(sched.ClosingTime) {
		return fmt.Errorf("%w: opening time must be before closing time", ErrInvalidSchedule)
	}
	if sched.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: slot granularity must be positive", ErrInvalidSchedule)
	}
	return nil
}
