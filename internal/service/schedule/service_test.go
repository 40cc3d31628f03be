package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

type fakeRepo struct {
	stored  *domain.BusinessSchedule
	getHits int
}

func (f *fakeRepo) Get(_ context.Context) (*domain.BusinessSchedule, error) {
	f.getHits++
	if f.stored == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.stored, nil
}

func (f *fakeRepo) Upsert(_ context.Context, sched *domain.BusinessSchedule) (*domain.BusinessSchedule, error) {
	sched.ID = 1
	f.stored = sched
	return sched, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGet_CachesSchedule(t *testing.T) {
	repo := &fakeRepo{stored: domain.DefaultBusinessSchedule()}
	svc := NewService(repo, nopLogger{})

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	second, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, repo.getHits)
}

func TestGet_LazilyCreatesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	sched, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOpeningTime, sched.OpeningTime)
	assert.Equal(t, domain.DefaultClosingTime, sched.ClosingTime)
	assert.NotNil(t, repo.stored)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := &fakeRepo{stored: domain.DefaultBusinessSchedule()}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	updated := &domain.BusinessSchedule{
		WorkingDays:            []int{1, 2, 3},
		OpeningTime:            "10:00",
		ClosingTime:            "18:00",
		SlotGranularityMinutes: 15,
	}
	_, err = svc.Update(context.Background(), updated)
	require.NoError(t, err)

	sched, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), sched.OpeningTime)
	assert.Equal(t, 2, repo.getHits)
}

func TestUpdate_RejectsInvalidSchedule(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	tests := []struct {
		name  string
		sched *domain.BusinessSchedule
	}{
		{"no working days", &domain.BusinessSchedule{OpeningTime: "09:00", ClosingTime: "20:00", SlotGranularityMinutes: 30}},
		{"day out of range", &domain.BusinessSchedule{WorkingDays: []int{7}, OpeningTime: "09:00", ClosingTime: "20:00", SlotGranularityMinutes: 30}},
		{"opening after closing", &domain.BusinessSchedule{WorkingDays: []int{1}, OpeningTime: "20:00", ClosingTime: "09:00", SlotGranularityMinutes: 30}},
		{"bad granularity", &domain.BusinessSchedule{WorkingDays: []int{1}, OpeningTime: "09:00", ClosingTime: "20:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.sched)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}
