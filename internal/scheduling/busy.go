package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// BusyAggregator собирает занятые интервалы профессионала на день
// Источники: активные записи в БД и занятость внешнего календаря.
// Дедупликация не нужна: проверка пересечений терпима к избыточным интервалам
type BusyAggregator struct {
	appointments AppointmentStore
	external     ExternalBusyProvider // nil, если интеграция с календарём выключена
	log          Logger
}

// NewBusyAggregator создает агрегатор занятых интервалов
func NewBusyAggregator(appointments AppointmentStore, external ExternalBusyProvider, log Logger) *BusyAggregator {
	return &BusyAggregator{
		appointments: appointments,
		external:     external,
		log:          log,
	}
}

// GetBusyIntervals возвращает все занятые интервалы профессионала на дату
// Сбой внешнего календаря никогда не валит запрос: доступность считается
// только по локальным записям
func (a *BusyAggregator) GetBusyIntervals(ctx context.Context, professionalID int64, date time.Time) ([]domain.BusyInterval, error) {
	return a.GetBusyIntervalsExcluding(ctx, professionalID, date, 0)
}

// GetBusyIntervalsExcluding то же, но запись excludeAppointmentID не считается
// занятой. Используется при переносе: старое время записи не должно блокировать
// её же новое время
func (a *BusyAggregator) GetBusyIntervalsExcluding(ctx context.Context, professionalID int64, date time.Time, excludeAppointmentID int64) ([]domain.BusyInterval, error) {
	filter := domain.AppointmentsFilter{
		ProfessionalID: &professionalID,
		StartDate:      &date,
		EndDate:        &date,
	}

	appointments, err := a.appointments.GetByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	intervals := make([]domain.BusyInterval, 0, len(appointments))
	for _, appt := range appointments {
		if excludeAppointmentID != 0 && appt.ID == excludeAppointmentID {
			continue
		}
		intervals = append(intervals, domain.BusyInterval{
			Start:  appt.StartTime.Minutes(),
			End:    appt.EndTime.Minutes(),
			Source: domain.BusySourceLocal,
		})
	}

	if a.external != nil {
		intervals = append(intervals, a.external.GetBusyIntervals(ctx, date)...)
	}

	return intervals, nil
}
