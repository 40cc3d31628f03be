package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	exceptionRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/exception"
)

type fakeExceptions struct {
	items map[string]*domain.DayException
}

func newFakeExceptions(items ...*domain.DayException) *fakeExceptions {
	f := &fakeExceptions{items: make(map[string]*domain.DayException)}
	for _, exc := range items {
		f.items[excKey(exc.ProfessionalID, exc.Date)] = exc
	}
	return f
}

func excKey(professionalID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", professionalID, date.Format(domain.DateFormat))
}

func (f *fakeExceptions) GetByProfessionalAndDate(_ context.Context, professionalID int64, date time.Time) (*domain.DayException, error) {
	exc, ok := f.items[excKey(professionalID, date)]
	if !ok {
		return nil, exceptionRepo.ErrExceptionNotFound
	}
	return exc, nil
}

func (f *fakeExceptions) GetByProfessionalAndRange(_ context.Context, professionalID int64, from, to time.Time) ([]*domain.DayException, error) {
	result := make([]*domain.DayException, 0)
	for _, exc := range f.items {
		if exc.ProfessionalID != professionalID {
			continue
		}
		if exc.Date.Before(from) || exc.Date.After(to) {
			continue
		}
		result = append(result, exc)
	}
	return result, nil
}

type fakeHolidays struct {
	dates map[string]bool
}

func newFakeHolidays(dates ...string) *fakeHolidays {
	f := &fakeHolidays{dates: make(map[string]bool)}
	for _, d := range dates {
		f.dates[d] = true
	}
	return f
}

func (f *fakeHolidays) IsHoliday(_ context.Context, date time.Time) bool {
	return f.dates[date.Format(domain.DateFormat)]
}

func (f *fakeHolidays) HolidaysInRange(_ context.Context, from, to time.Time) map[string]bool {
	result := make(map[string]bool)
	for d := range f.dates {
		parsed, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			continue
		}
		if parsed.Before(from) || parsed.After(to) {
			continue
		}
		result[d] = true
	}
	return result
}

type fakeAppointments struct {
	items []*domain.Appointment
}

func (f *fakeAppointments) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.items {
		if filter.ProfessionalID != nil && appt.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if filter.ClientID != nil && appt.ClientID != *filter.ClientID {
			continue
		}
		if filter.StartDate != nil && appt.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && appt.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeProfessionals struct {
	items []*domain.Professional
}

func (f *fakeProfessionals) GetActive(_ context.Context) ([]*domain.Professional, error) {
	result := make([]*domain.Professional, 0)
	for _, prof := range f.items {
		if prof.Active {
			result = append(result, prof)
		}
	}
	return result, nil
}

type fakeSchedule struct {
	schedule *domain.BusinessSchedule
}

func (f *fakeSchedule) Get(_ context.Context) (*domain.BusinessSchedule, error) {
	return f.schedule, nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeExternalBusy struct {
	intervals []domain.BusyInterval
}

func (f *fakeExternalBusy) GetBusyIntervals(_ context.Context, _ time.Time) []domain.BusyInterval {
	return f.intervals
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
