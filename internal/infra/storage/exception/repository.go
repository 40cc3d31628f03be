package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

var exceptionColumns = []string{
	"id",
	"professional_id",
	"exception_date",
	"exception_type",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с исключениями расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или заменяет исключение на дату
// На пару (профессионал, дата) живёт одно исключение, поэтому ON CONFLICT
func (r *Repository) Upsert(ctx context.Context, exc *domain.DayException) (*domain.DayException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_exceptions").
		Columns(
			"professional_id",
			"exception_date",
			"exception_type",
			"start_time",
			"end_time",
		).
		Values(
			exc.ProfessionalID,
			exc.Date,
			exc.Type,
			nullableTime(exc.StartTime),
			nullableTime(exc.EndTime),
		).
		Suffix(`ON CONFLICT (professional_id, exception_date) DO UPDATE SET
			exception_type = EXCLUDED.exception_type,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// GetByProfessionalAndDate получает исключение профессионала на конкретную дату
func (r *Repository) GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) (*domain.DayException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("day_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"exception_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	exc, err := scanException(row)
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetByProfessionalAndRange получает исключения профессионала за период
// Используется месячной доступностью, чтобы не дёргать БД по одному дню
func (r *Repository) GetByProfessionalAndRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.DayException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("day_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		Where(squirrel.LtOrEq{"exception_date": to}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.DayException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProfessionalAndRange - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndRange - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// Delete удаляет исключение профессионала на дату
func (r *Repository) Delete(ctx context.Context, professionalID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"exception_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// scanner минимальный интерфейс для Scan: поддерживает *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanException(row scanner) (*domain.DayException, error) {
	var exc domain.DayException
	var startTime, endTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.ProfessionalID,
		&exc.Date,
		&exc.Type,
		&startTime,
		&endTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	exc.StartTime = types.TimeString(startTime.String)
	exc.EndTime = types.TimeString(endTime.String)
	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

// nullableTime превращает пустое время в NULL для колонок custom-окна
func nullableTime(t types.TimeString) any {
	if t.IsZero() {
		return nil
	}
	return string(t)
}
