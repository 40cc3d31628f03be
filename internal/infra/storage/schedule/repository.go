package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с общим расписанием салона
// В таблице живёт одна строка; id зафиксирован
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const singletonID = 1

// Get получает текущее расписание салона
func (r *Repository) Get(ctx context.Context) (*domain.BusinessSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"working_days",
		"opening_time",
		"closing_time",
		"slot_granularity_minutes",
		"whatsapp_number",
		"created_at",
		"updated_at",
	).
		From("business_schedule").
		Where("id = ?", singletonID).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var sched domain.BusinessSchedule
	var workingDays pq.Int64Array
	var openingTime, closingTime string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&workingDays,
		&openingTime,
		&closingTime,
		&sched.SlotGranularityMinutes,
		&sched.WhatsAppNumber,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	sched.WorkingDays = make([]int, 0, len(workingDays))
	for _, d := range workingDays {
		sched.WorkingDays = append(sched.WorkingDays, int(d))
	}
	sched.OpeningTime = types.TimeString(openingTime)
	sched.ClosingTime = types.TimeString(closingTime)
	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return &sched, nil
}

// Upsert сохраняет расписание салона, создавая строку при первом обращении
func (r *Repository) Upsert(ctx context.Context, sched *domain.BusinessSchedule) (*domain.BusinessSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDays := make(pq.Int64Array, 0, len(sched.WorkingDays))
	for _, d := range sched.WorkingDays {
		workingDays = append(workingDays, int64(d))
	}

	query, args, err := psqlbuilder.Insert("business_schedule").
		Columns(
			"id",
			"working_days",
			"opening_time",
			"closing_time",
			"slot_granularity_minutes",
			"whatsapp_number",
		).
		Values(
			singletonID,
			workingDays,
			string(sched.OpeningTime),
			string(sched.ClosingTime),
			sched.SlotGranularityMinutes,
			sched.WhatsAppNumber,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			whatsapp_number = EXCLUDED.whatsapp_number,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return sched, nil
}
