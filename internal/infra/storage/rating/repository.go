package rating

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

// Repository репозиторий для конфигурации рейтингов, метрик и рейтинговых оценок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рейтингов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveConfig возвращает единственную активную конфигурацию рейтинга
func (r *Repository) GetActiveConfig(ctx context.Context) (*domain.RatingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reviews_weight",
		"productivity_weight",
		"loyalty_weight",
		"discipline_weight",
		"window_days",
		"valid_from",
		"is_active",
		"created_at",
	).
		From("rating_configs").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("valid_from DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.RatingConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.ReviewsWeight,
		&cfg.ProductivityWeight,
		&cfg.LoyaltyWeight,
		&cfg.DisciplineWeight,
		&cfg.WindowDays,
		&cfg.ValidFrom,
		&cfg.IsActive,
		&cfg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConfig - scan config: %v", ErrScanRow, err)
	}

	return &cfg, nil
}

// DeactivateActive снимает флаг is_active со всех конфигураций.
// Вызывается в одной транзакции с InsertConfig, чтобы активная
// конфигурация всегда была ровно одна.
func (r *Repository) DeactivateActive(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rating_configs").
		Set("is_active", false).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateActive - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeactivateActive - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// InsertConfig сохраняет новую активную конфигурацию рейтинга
func (r *Repository) InsertConfig(ctx context.Context, cfg *domain.RatingConfig) (*domain.RatingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rating_configs").
		Columns(
			"reviews_weight",
			"productivity_weight",
			"loyalty_weight",
			"discipline_weight",
			"window_days",
			"valid_from",
			"is_active",
		).
		Values(
			cfg.ReviewsWeight,
			cfg.ProductivityWeight,
			cfg.LoyaltyWeight,
			cfg.DisciplineWeight,
			cfg.WindowDays,
			squirrel.Expr("NOW()"),
			true,
		).
		Suffix("RETURNING id, valid_from, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfig - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.ValidFrom,
		&cfg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfig - execute insert: %v", ErrExecQuery, err)
	}

	cfg.IsActive = true
	return cfg, nil
}

// GetDayMetrics возвращает дневные метрики сущности за период [from, to]
func (r *Repository) GetDayMetrics(ctx context.Context, entity domain.RatingEntity, from, to time.Time) ([]*domain.DayMetrics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"entity_type",
		"entity_id",
		"metric_date",
		"reviews_score",
		"productivity_score",
		"loyalty_score",
		"discipline_score",
	).
		From("day_metrics").
		Where(squirrel.Eq{"entity_type": entity.Type, "entity_id": entity.ID}).
		Where(squirrel.GtOrEq{"metric_date": from}).
		Where(squirrel.LtOrEq{"metric_date": to}).
		OrderBy("metric_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayMetrics - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayMetrics - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	metrics := make([]*domain.DayMetrics, 0)
	for rows.Next() {
		var m domain.DayMetrics
		err := rows.Scan(
			&m.Entity.Type,
			&m.Entity.ID,
			&m.Date,
			&m.Reviews,
			&m.Productivity,
			&m.Loyalty,
			&m.Discipline,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetDayMetrics - scan row: %v", ErrScanRow, err)
		}
		metrics = append(metrics, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayMetrics - rows error: %v", ErrScanRow, err)
	}

	return metrics, nil
}

// UpsertScore записывает рейтинговую оценку, ключ (entity_type, entity_id, metric_date).
// Повторный пересчет за ту же дату перезаписывает строку, поэтому батч идемпотентен.
func (r *Repository) UpsertScore(ctx context.Context, score *domain.RatingScore) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rating_scores").
		Columns("entity_type", "entity_id", "score", "metric_date", "config_id", "calculated_at").
		Values(score.Entity.Type, score.Entity.ID, score.Score, score.MetricDate, score.ConfigID, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (entity_type, entity_id, metric_date)
			DO UPDATE SET score = EXCLUDED.score, config_id = EXCLUDED.config_id, calculated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertScore - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertScore - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListActiveEntities возвращает все активные сущности (бизнесы, филиалы, мастера),
// участвующие в батч-пересчете рейтингов
func (r *Repository) ListActiveEntities(ctx context.Context) ([]domain.RatingEntity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("entity_type", "entity_id").
		From("rating_entities").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("entity_type ASC", "entity_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEntities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEntities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entities := make([]domain.RatingEntity, 0)
	for rows.Next() {
		var e domain.RatingEntity
		if err := rows.Scan(&e.Type, &e.ID); err != nil {
			return nil, fmt.Errorf("%w: ListActiveEntities - scan row: %v", ErrScanRow, err)
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveEntities - rows error: %v", ErrScanRow, err)
	}

	return entities, nil
}

// LogRecalcError записывает ошибку пересчета рейтинга отдельной сущности.
// Ошибка одной сущности не прерывает батч, но должна быть видна для разбора.
func (r *Repository) LogRecalcError(ctx context.Context, recalcErr *domain.RecalcError) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rating_recalc_errors").
		Columns("entity_type", "entity_id", "metric_date", "message", "occurred_at").
		Values(recalcErr.Entity.Type, recalcErr.Entity.ID, recalcErr.MetricDate, recalcErr.Message, squirrel.Expr("NOW()")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LogRecalcError - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LogRecalcError - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
