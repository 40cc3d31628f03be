package notificationlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notificationlog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notificationlog.repository: failed to execute query")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository журнал отправленных уведомлений
// Уникальность пары (запись, тип) делает повторную отправку безопасной
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// MarkSent фиксирует отправку уведомления
// Возвращает false, если уведомление этого типа уже было отправлено
func (r *Repository) MarkSent(ctx context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_log").
		Columns("appointment_id", "notification_type").
		Values(appointmentID, notificationType).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkSent - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if err != nil {
		// 23505 = unique_violation: уведомление уже отправлено, это не ошибка
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("%w: MarkSent - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Exists проверяет, было ли отправлено уведомление данного типа
func (r *Repository) Exists(ctx context.Context, appointmentID int64, notificationType domain.NotificationType) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("notification_log").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(squirrel.Eq{"notification_type": notificationType}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: Exists - execute query: %v", ErrExecQuery, err)
	}

	return count > 0, nil
}

// DeleteByAppointment очищает журнал записи
// Вызывается при переносе: напоминания должны уйти заново для новой даты
func (r *Repository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("notification_log").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByAppointment - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByAppointment - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
