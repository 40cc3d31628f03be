package professional

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SHS-AppointmentService/pkg/psqlbuilder"
)

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("professional.repository: professional not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("professional.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("professional.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("professional.repository: failed to scan row")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var professionalColumns = []string{
	"id",
	"name",
	"email",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с профессионалами салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профессионалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профессионала по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail получает профессионала по email
// Email связывает учётку пользователя из Directory с ростером салона
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Professional, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, "GetByEmail")
}

// GetActive получает всех активных профессионалов, упорядоченных по ID
// Порядок важен: при равной загрузке автоподбор берёт первого
func (r *Repository) GetActive(ctx context.Context) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		prof, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActive - scan row: %v", ErrScanRow, err)
		}
		professionals = append(professionals, prof)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActive - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	prof, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan professional: %v", ErrScanRow, op, err)
	}

	return prof, nil
}

// scanner минимальный интерфейс для Scan: поддерживает *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanProfessional(row scanner) (*domain.Professional, error) {
	var prof domain.Professional
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&prof.ID,
		&prof.Name,
		&prof.Email,
		&prof.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	prof.CreatedAt = createdAt.Time
	prof.UpdatedAt = updatedAt.Time

	return &prof, nil
}
