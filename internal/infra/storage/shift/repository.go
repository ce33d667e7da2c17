package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const shiftColumns = `id, staff_id, branch_id, shift_date, status,
total_amount, consumables_amount, percent_master, percent_salon,
master_share, salon_share, hourly_rate, hours_worked, guaranteed_amount, topup_amount,
opened_at, closed_at, created_at, updated_at`

// Repository репозиторий для работы со сменами и позициями смен.
// Одна открытая смена на (staff_id, shift_date) обеспечивается partial unique index:
//
//	CREATE UNIQUE INDEX shifts_one_open ON shifts (staff_id, shift_date)
//	WHERE (status = 'open')
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create открывает новую смену
func (r *Repository) Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shifts").
		Columns(
			"staff_id",
			"branch_id",
			"shift_date",
			"status",
			"percent_master",
			"percent_salon",
			"hourly_rate",
			"opened_at",
		).
		Values(
			s.StaffID,
			s.BranchID,
			s.Date,
			domain.ShiftOpen,
			s.PercentMaster,
			s.PercentSalon,
			s.HourlyRate,
			squirrel.Expr("NOW()"),
		).
		Suffix("RETURNING id, opened_at, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OpenedAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation {
			return nil, ErrShiftAlreadyOpen
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.Status = domain.ShiftOpen
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает смену по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(shiftColumns).
		From("shifts").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanShift(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shift: %v", ErrScanRow, err)
	}

	return s, nil
}

// AddItems добавляет позиции к смене
func (r *Repository) AddItems(ctx context.Context, shiftID int64, items []*domain.ShiftItem) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("shift_items").
		Columns("shift_id", "client_name", "service_name", "service_amount", "consumables_amount")

	for _, item := range items {
		insertBuilder = insertBuilder.Values(
			shiftID,
			item.ClientName,
			item.ServiceName,
			item.ServiceAmount,
			item.ConsumablesAmount,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddItems - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddItems - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListItems возвращает все позиции смены
func (r *Repository) ListItems(ctx context.Context, shiftID int64) ([]*domain.ShiftItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"shift_id",
		"client_name",
		"service_name",
		"service_amount",
		"consumables_amount",
		"created_at",
	).
		From("shift_items").
		Where(squirrel.Eq{"shift_id": shiftID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.ShiftItem, 0)
	for rows.Next() {
		var item domain.ShiftItem
		var createdAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.ShiftID,
			&item.ClientName,
			&item.ServiceName,
			&item.ServiceAmount,
			&item.ConsumablesAmount,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListItems - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// UpdateTotals записывает пересчитанные итоги смены
func (r *Repository) UpdateTotals(ctx context.Context, s *domain.Shift) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shifts").
		Set("total_amount", s.TotalAmount).
		Set("consumables_amount", s.ConsumablesAmount).
		Set("master_share", s.MasterShare).
		Set("salon_share", s.SalonShare).
		Set("hours_worked", s.HoursWorked).
		Set("guaranteed_amount", s.GuaranteedAmount).
		Set("topup_amount", s.TopupAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShiftNotFound
	}

	return nil
}

// Close переводит смену в статус closed. Переход необратим.
func (r *Repository) Close(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shifts").
		Set("status", domain.ShiftClosed).
		Set("closed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ShiftOpen}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShiftNotFound
	}

	return nil
}

// scanShift сканирует одну строку в domain.Shift
func scanShift(row interface{ Scan(dest ...interface{}) error }) (*domain.Shift, error) {
	var s domain.Shift
	var hourlyRate sql.NullFloat64
	var closedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.StaffID,
		&s.BranchID,
		&s.Date,
		&s.Status,
		&s.TotalAmount,
		&s.ConsumablesAmount,
		&s.PercentMaster,
		&s.PercentSalon,
		&s.MasterShare,
		&s.SalonShare,
		&hourlyRate,
		&s.HoursWorked,
		&s.GuaranteedAmount,
		&s.TopupAmount,
		&s.OpenedAt,
		&closedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hourlyRate.Valid {
		s.HourlyRate = &hourlyRate.Float64
	}
	if closedAt.Valid {
		s.ClosedAt = &closedAt.Time
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
