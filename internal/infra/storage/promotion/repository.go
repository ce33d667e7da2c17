package promotion

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с акциями и счетчиками их использования.
// Акции читаются движком акций только на чтение; флоу бронирования их не изменяет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория акций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByBranch возвращает акции филиала, действующие на указанную дату.
// Проверка is_active и границ действия выполняется на стороне БД,
// открытые границы (NULL) допустимы.
func (r *Repository) ListActiveByBranch(ctx context.Context, branchID int64, onDate time.Time) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"promotion_type",
		"visit_count",
		"discount_percent",
		"window_days",
		"valid_from",
		"valid_to",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("promotions").
		Where(squirrel.Eq{"branch_id": branchID, "is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_from": nil},
			squirrel.LtOrEq{"valid_from": onDate},
		}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_to": nil},
			squirrel.GtOrEq{"valid_to": onDate},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByBranch - scan row: %v", ErrScanRow, err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBranch - rows error: %v", ErrScanRow, err)
	}

	return promotions, nil
}

// GetUsage возвращает счетчик использования акции клиентом.
// Если записи нет, возвращает нулевой счетчик, а не ошибку.
func (r *Repository) GetUsage(ctx context.Context, clientID, promotionID int64) (*domain.ClientPromotionUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"client_id",
		"promotion_id",
		"usage_count",
		"last_used_at",
	).
		From("client_promotion_usage").
		Where(squirrel.Eq{"client_id": clientID, "promotion_id": promotionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUsage - build select query: %v", ErrBuildQuery, err)
	}

	var usage domain.ClientPromotionUsage
	var lastUsedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&usage.ClientID,
		&usage.PromotionID,
		&usage.UsageCount,
		&lastUsedAt,
	)

	if err == sql.ErrNoRows {
		return &domain.ClientPromotionUsage{ClientID: clientID, PromotionID: promotionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUsage - scan usage: %v", ErrScanRow, err)
	}

	usage.LastUsedAt = lastUsedAt.Time
	return &usage, nil
}

// IncrementUsage увеличивает счетчик использования акции клиентом (upsert).
// Вызывается ровно один раз на успешное применение акции, в той же транзакции,
// что и переход бронирования в paid.
func (r *Repository) IncrementUsage(ctx context.Context, clientID, promotionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("client_promotion_usage").
		Columns("client_id", "promotion_id", "usage_count", "last_used_at").
		Values(clientID, promotionID, 1, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (client_id, promotion_id)
			DO UPDATE SET usage_count = client_promotion_usage.usage_count + 1, last_used_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// HasQualifyingReferral проверяет, есть ли у клиента реферальная связь в филиале,
// дающая право на реферальную акцию
func (r *Repository) HasQualifyingReferral(ctx context.Context, clientID, branchID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("client_referrals").
		Where(squirrel.Eq{"referred_client_id": clientID, "branch_id": branchID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasQualifyingReferral - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasQualifyingReferral - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// scanPromotion сканирует строку в domain.Promotion с раскладкой параметров
// по типу акции (tagged union вместо нетипизированного params)
func scanPromotion(rows *sql.Rows) (*domain.Promotion, error) {
	var p domain.Promotion
	var visitCount sql.NullInt64
	var discountPercent sql.NullFloat64
	var windowDays sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&p.ID,
		&p.BranchID,
		&p.Type,
		&visitCount,
		&discountPercent,
		&windowDays,
		&p.ValidFrom,
		&p.ValidTo,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch p.Type {
	case domain.PromotionFreeAfterNVisits:
		p.Params.FreeAfterNVisits = &domain.FreeAfterNVisitsParams{
			VisitCount: int(visitCount.Int64),
		}
	case domain.PromotionBirthdayDiscount:
		days := domain.DefaultBirthdayWindowDays
		if windowDays.Valid {
			days = int(windowDays.Int64)
		}
		p.Params.Birthday = &domain.BirthdayDiscountParams{
			DiscountPercent: discountPercent.Float64,
			WindowDays:      days,
		}
	case domain.PromotionFirstVisitDiscount:
		p.Params.FirstVisit = &domain.FirstVisitDiscountParams{
			DiscountPercent: discountPercent.Float64,
		}
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
