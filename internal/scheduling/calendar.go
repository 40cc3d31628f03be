package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	exceptionRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/exception"
)

// WindowResolver вычисляет эффективное рабочее окно профессионала на день
//
// Порядок разрешения:
// 1. Явное исключение на (профессионал, дата): главнее всего, включая праздники.
// 2. Без исключения: официальный праздник закрывает день независимо от дня недели.
// 3. Иначе день открыт, только если день недели входит в рабочие дни салона.
type WindowResolver struct {
	exceptions ExceptionStore
	holidays   HolidayProvider
}

// NewWindowResolver создает резолвер рабочих окон
func NewWindowResolver(exceptions ExceptionStore, holidays HolidayProvider) *WindowResolver {
	return &WindowResolver{
		exceptions: exceptions,
		holidays:   holidays,
	}
}

// ResolveWindow возвращает рабочее окно профессионала на дату
func (r *WindowResolver) ResolveWindow(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, date time.Time) (domain.DayWindow, error) {
	exc, err := r.exceptions.GetByProfessionalAndDate(ctx, professionalID, date)
	if err != nil && !errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
		return domain.DayWindow{}, fmt.Errorf("%w: failed to load day exception: %v", ErrInternal, err)
	}

	if exc == nil {
		if r.holidays.IsHoliday(ctx, date) {
			return closedWindow(domain.ClosureHoliday), nil
		}
		return defaultWindow(schedule, date), nil
	}

	return windowFromException(schedule, exc), nil
}

// ResolveWindowBulk возвращает окна на каждый день месяца одним набором запросов
// Исключения и праздники загружаются разом, не по одному дню
func (r *WindowResolver) ResolveWindowBulk(ctx context.Context, schedule *domain.BusinessSchedule, professionalID int64, year int, month time.Month) (map[int]domain.DayWindow, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	exceptions, err := r.exceptions.GetByProfessionalAndRange(ctx, professionalID, first, last)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load month exceptions: %v", ErrInternal, err)
	}

	excByDay := make(map[int]*domain.DayException, len(exceptions))
	for _, exc := range exceptions {
		excByDay[exc.Date.Day()] = exc
	}

	holidays := r.holidays.HolidaysInRange(ctx, first, last)

	windows := make(map[int]domain.DayWindow, last.Day())
	for day := 1; day <= last.Day(); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if exc, ok := excByDay[day]; ok {
			windows[day] = windowFromException(schedule, exc)
			continue
		}
		if holidays[date.Format(domain.DateFormat)] {
			windows[day] = closedWindow(domain.ClosureHoliday)
			continue
		}
		windows[day] = defaultWindow(schedule, date)
	}

	return windows, nil
}

// ResolveBusinessWindow возвращает окно салона в целом для запросов "any"
// Персональные исключения тут не применяются: только праздники и дни недели
func (r *WindowResolver) ResolveBusinessWindow(ctx context.Context, schedule *domain.BusinessSchedule, date time.Time) domain.DayWindow {
	if r.holidays.IsHoliday(ctx, date) {
		return closedWindow(domain.ClosureHoliday)
	}
	return defaultWindow(schedule, date)
}

func windowFromException(schedule *domain.BusinessSchedule, exc *domain.DayException) domain.DayWindow {
	switch exc.Type {
	case domain.ExceptionOff:
		return closedWindow(domain.ClosureDayOff)
	case domain.ExceptionCustom:
		// Особое окно делает день рабочим даже вне расписания салона
		return domain.DayWindow{
			IsOpen:       true,
			StartMinutes: exc.StartTime.Minutes(),
			EndMinutes:   exc.EndTime.Minutes(),
		}
	default:
		// normal: принудительно общее расписание, даже в выходной и праздник
		return domain.DayWindow{
			IsOpen:       true,
			StartMinutes: schedule.OpeningTime.Minutes(),
			EndMinutes:   schedule.ClosingTime.Minutes(),
		}
	}
}

func defaultWindow(schedule *domain.BusinessSchedule, date time.Time) domain.DayWindow {
	if !schedule.IsWorkingDay(date.Weekday()) {
		return closedWindow(domain.ClosureNonWorking)
	}
	return domain.DayWindow{
		IsOpen:       true,
		StartMinutes: schedule.OpeningTime.Minutes(),
		EndMinutes:   schedule.ClosingTime.Minutes(),
	}
}

func closedWindow(reason domain.ClosureReason) domain.DayWindow {
	return domain.DayWindow{IsOpen: false, ClosureReason: reason}
}
