package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// Planner оркестрирует расчёт доступности по дню и по месяцу
// Для конкретного профессионала: окно -> занятость -> слоты.
// Для "any": объединение слотов всех активных профессионалов
type Planner struct {
	windows       *WindowResolver
	busy          *BusyAggregator
	professionals ProfessionalStore
	schedule      ScheduleProvider
	clock         TimeProvider
	log           Logger
}

// NewPlanner создает планировщик доступности
func NewPlanner(
	windows *WindowResolver,
	busy *BusyAggregator,
	professionals ProfessionalStore,
	schedule ScheduleProvider,
	clock TimeProvider,
	log Logger,
) *Planner {
	return &Planner{
		windows:       windows,
		busy:          busy,
		professionals: professionals,
		schedule:      schedule,
		clock:         clock,
		log:           log,
	}
}

// DayAvailability возвращает свободные слоты дня
// professionalID == nil означает "любой профессионал": берётся объединение
// слотов всех активных профессионалов без дублей, по возрастанию времени
func (p *Planner) DayAvailability(ctx context.Context, professionalID *int64, durationMinutes int, date time.Time) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	schedule, err := p.schedule.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load business schedule: %v", ErrInternal, err)
	}

	if professionalID != nil {
		return p.ProfessionalSlots(ctx, schedule, *professionalID, durationMinutes, date)
	}

	return p.anySlots(ctx, schedule, durationMinutes, date)
}

// ProfessionalSlots считает слоты одного профессионала
// Вынесено отдельно: транзакция бронирования повторяет именно этот конвейер
func (p *Planner) ProfessionalSlots(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, date time.Time) ([]domain.Slot, error) {
	window, err := p.windows.ResolveWindow(ctx, schedule, professionalID, date)
	if err != nil {
		return nil, err
	}
	if !window.IsOpen {
		return []domain.Slot{}, nil
	}

	busy, err := p.busy.GetBusyIntervals(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	return GenerateSlots(window, durationMinutes, busy, date, p.clock.Now()), nil
}

// IsSlotBookable проверяет конкретный слот профессионала перед записью
func (p *Planner) IsSlotBookable(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, date time.Time, startMinutes int) (bool, error) {
	return p.IsSlotBookableExcluding(ctx, schedule, professionalID, durationMinutes, date, startMinutes, 0)
}

// IsSlotBookableExcluding проверяет слот, не считая занятым время записи
// excludeAppointmentID (нужна при переносе этой самой записи)
func (p *Planner) IsSlotBookableExcluding(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, date time.Time, startMinutes int, excludeAppointmentID int64) (bool, error) {
	window, err := p.windows.ResolveWindow(ctx, schedule, professionalID, date)
	if err != nil {
		return false, err
	}
	if !window.IsOpen {
		return false, nil
	}

	busy, err := p.busy.GetBusyIntervalsExcluding(ctx, professionalID, date, excludeAppointmentID)
	if err != nil {
		return false, err
	}

	// Слот в прошлом бронировать нельзя
	now := p.clock.Now()
	if isDateInPast(date, now) {
		return false, nil
	}
	if isSameDay(date, now) && startMinutes < now.Hour()*60 + now.Minute() {
		return false, nil
	}

	return IsSlotFree(window, startMinutes, durationMinutes, busy), nil
}

func (p *Planner) anySlots(ctx context.Context, schedule *domain.BusinessSchedule, durationMinutes int, date time.Time) ([]domain.Slot, error) {
	professionals, err := p.professionals.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load professionals: %v", ErrInternal, err)
	}

	seen := make(map[domain.Slot]struct{})
	union := make([]domain.Slot, 0)

	for _, prof := range professionals {
		slots, err := p.ProfessionalSlots(ctx, schedule, prof.ID, durationMinutes, date)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			union = append(union, slot)
		}
	}

	sort.Slice(union, func(i, j int) bool {
		return union[i].StartTime.Minutes() < union[j].StartTime.Minutes()
	})

	return union, nil
}

// MonthAvailability классифицирует каждый день месяца
// Ключ результата: день месяца (1..31)
//
// Порядок проверок на день:
// 1. past: день раньше сегодняшнего.
// 2. Закрытый день: franco (праздник или франко профессионала) либо closed
//    (нерабочий день недели). Слоты для таких дней не считаются вовсе.
// 3. available при хотя бы одном свободном слоте, иначе full.
func (p *Planner) MonthAvailability(ctx context.Context, professionalID *int64, durationMinutes int, year int, month time.Month) (map[int]domain.DayStatus, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	schedule, err := p.schedule.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load business schedule: %v", ErrInternal, err)
	}

	if professionalID != nil {
		return p.professionalMonth(ctx, schedule, *professionalID, durationMinutes, year, month)
	}
	return p.anyMonth(ctx, schedule, durationMinutes, year, month)
}

func (p *Planner) professionalMonth(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, durationMinutes int, year int, month time.Month) (map[int]domain.DayStatus, error) {
	windows, err := p.windows.ResolveWindowBulk(ctx, schedule, professionalID, year, month)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	statuses := make(map[int]domain.DayStatus, len(windows))

	for day, window := range windows {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if isDateInPast(date, now) {
			statuses[day] = domain.DayPast
			continue
		}
		if !window.IsOpen {
			statuses[day] = closureStatus(window.ClosureReason)
			continue
		}

		busy, err := p.busy.GetBusyIntervals(ctx, professionalID, date)
		if err != nil {
			return nil, err
		}

		if len(GenerateSlots(window, durationMinutes, busy, date, now)) > 0 {
			statuses[day] = domain.DayAvailable
		} else {
			statuses[day] = domain.DayFull
		}
	}

	return statuses, nil
}

// anyMonth классифицирует месяц на уровне салона
// Персональные исключения здесь не действуют; день доступен, если доступен
// хотя бы у одного активного профессионала
func (p *Planner) anyMonth(ctx context.Context, schedule *domain.BusinessSchedule, durationMinutes int, year int, month time.Month) (map[int]domain.DayStatus, error) {
	professionals, err := p.professionals.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load professionals: %v", ErrInternal, err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	now := p.clock.Now()

	statuses := make(map[int]domain.DayStatus, last.Day())

	for day := 1; day <= last.Day(); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if isDateInPast(date, now) {
			statuses[day] = domain.DayPast
			continue
		}

		window := p.windows.ResolveBusinessWindow(ctx, schedule, date)
		if !window.IsOpen {
			statuses[day] = closureStatus(window.ClosureReason)
			continue
		}

		status := domain.DayFull
		for _, prof := range professionals {
			slots, err := p.ProfessionalSlots(ctx, schedule, prof.ID, durationMinutes, date)
			if err != nil {
				return nil, err
			}
			if len(slots) > 0 {
				status = domain.DayAvailable
				break
			}
		}
		statuses[day] = status
	}

	return statuses, nil
}

// closureStatus переводит причину закрытия в статус месячного представления
// Праздник и франко профессионала показываются одинаково: franco
func closureStatus(reason domain.ClosureReason) domain.DayStatus {
	switch reason {
	case domain.ClosureHoliday, domain.ClosureDayOff:
		return domain.DayFranco
	default:
		return domain.DayClosed
	}
}
