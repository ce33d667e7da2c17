package ratings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	ratingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/rating"
)

// SaveConfigRequest запрос на сохранение конфигурации рейтинга
type SaveConfigRequest struct {
	ReviewsWeight      int
	ProductivityWeight int
	LoyaltyWeight      int
	DisciplineWeight   int
	WindowDays         int

	// Опциональный пересчет истории за N дней после смены конфигурации
	RecalcDaysBack *int
}

// SaveConfigResult результат сохранения конфигурации
type SaveConfigResult struct {
	Config         *domain.RatingConfig
	RecalcTriggered bool
	RecalcSummary  *BatchResult
}

// EntityError ошибка пересчета одной сущности в батче
type EntityError struct {
	Entity  domain.RatingEntity
	Message string
}

// BatchResult итог батч-пересчета рейтингов.
// Ошибки отдельных сущностей не прерывают батч и возвращаются списком.
type BatchResult struct {
	EntitiesProcessed int
	Errors            []EntityError
}

// Service агрегатор рейтингов: взвешенная оценка по дневным метрикам
// внутри окна конфигурации, батч-пересчет по всем активным сущностям.
type Service struct {
	ratingRepo   RatingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр агрегатора рейтингов
func NewService(
	ratingRepo RatingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ratingRepo:   ratingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SaveConfig сохраняет новую конфигурацию рейтинга.
// Предыдущая конфигурация деактивируется в той же транзакции:
// активная строка всегда ровно одна. Опционально запускает пересчет истории.
func (s *Service) SaveConfig(ctx context.Context, req *SaveConfigRequest) (*SaveConfigResult, error) {
	s.logger.Info("SaveConfig: weights=%d/%d/%d/%d, window=%d",
		req.ReviewsWeight, req.ProductivityWeight, req.LoyaltyWeight, req.DisciplineWeight, req.WindowDays)

	if err := validateConfig(req); err != nil {
		s.logger.Warn("SaveConfig: validation failed: %v", err)
		return nil, err
	}

	cfg := &domain.RatingConfig{
		ReviewsWeight:      req.ReviewsWeight,
		ProductivityWeight: req.ProductivityWeight,
		LoyaltyWeight:      req.LoyaltyWeight,
		DisciplineWeight:   req.DisciplineWeight,
		WindowDays:         req.WindowDays,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ratingRepo.DeactivateActive(txCtx); err != nil {
			return fmt.Errorf("%w: SaveConfig - deactivate previous: %v", ErrInternal, err)
		}

		saved, err := s.ratingRepo.InsertConfig(txCtx, cfg)
		if err != nil {
			return fmt.Errorf("%w: SaveConfig - insert config: %v", ErrInternal, err)
		}

		cfg = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("SaveConfig: config id=%d saved", cfg.ID)

	result := &SaveConfigResult{Config: cfg}

	if req.RecalcDaysBack != nil {
		summary, err := s.RecalculateAll(ctx, *req.RecalcDaysBack)
		if err != nil {
			// Конфигурация уже сохранена; ошибка пересчета не откатывает её
			s.logger.Error("SaveConfig: history recalculation failed: %v", err)
			return result, nil
		}
		result.RecalcTriggered = true
		result.RecalcSummary = summary
	}

	return result, nil
}

// Recalculate пересчитывает рейтинг сущности на дату asOfDate по конфигурации cfg.
// Оценка — среднее взвешенных дневных метрик в окне [asOfDate - window, asOfDate].
// Запись идемпотентна: ключ (entity, metric_date), повторный пересчет перезаписывает строку.
func (s *Service) Recalculate(ctx context.Context, entity domain.RatingEntity, asOfDate time.Time, cfg *domain.RatingConfig) (*domain.RatingScore, error) {
	from := asOfDate.AddDate(0, 0, -cfg.WindowDays)

	metrics, err := s.ratingRepo.GetDayMetrics(ctx, entity, from, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("%w: Recalculate - get metrics for %s/%d: %v", ErrInternal, entity.Type, entity.ID, err)
	}

	var score float64
	if len(metrics) > 0 {
		var sum float64
		for _, m := range metrics {
			sum += m.WeightedScore(cfg)
		}
		score = sum / float64(len(metrics))
	}

	ratingScore := &domain.RatingScore{
		Entity:     entity,
		Score:      score,
		MetricDate: asOfDate,
		ConfigID:   cfg.ID,
	}

	if err := s.ratingRepo.UpsertScore(ctx, ratingScore); err != nil {
		return nil, fmt.Errorf("%w: Recalculate - upsert score for %s/%d: %v", ErrInternal, entity.Type, entity.ID, err)
	}

	return ratingScore, nil
}

// RecalculateAll пересчитывает рейтинги всех активных сущностей за daysBack дней.
// Сбой одной сущности логируется и попадает в список ошибок, батч продолжается.
// Повторный запуск безопасен: записи upsert-ятся по ключу (entity, date).
func (s *Service) RecalculateAll(ctx context.Context, daysBack int) (*BatchResult, error) {
	if daysBack < domain.MinRecalcDaysBack || daysBack > domain.MaxRecalcDaysBack {
		return nil, ErrInvalidDaysBack
	}

	cfg, err := s.ratingRepo.GetActiveConfig(ctx)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: RecalculateAll - get active config: %v", ErrInternal, err)
	}

	entities, err := s.ratingRepo.ListActiveEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateAll - list entities: %v", ErrInternal, err)
	}

	s.logger.Info("RecalculateAll: recalculating %d entities for %d days back", len(entities), daysBack)

	today := dateOnly(s.timeProvider.Now())
	result := &BatchResult{}

	for _, entity := range entities {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.recalculateEntityRange(ctx, entity, today, daysBack, cfg); err != nil {
			s.logger.Error("RecalculateAll: entity %s/%d failed: %v", entity.Type, entity.ID, err)

			result.Errors = append(result.Errors, EntityError{Entity: entity, Message: err.Error()})

			logErr := s.ratingRepo.LogRecalcError(ctx, &domain.RecalcError{
				Entity:     entity,
				MetricDate: today,
				Message:    err.Error(),
			})
			if logErr != nil {
				s.logger.Error("RecalculateAll: failed to log recalc error for %s/%d: %v", entity.Type, entity.ID, logErr)
			}
			continue
		}

		result.EntitiesProcessed++
	}

	s.logger.Info("RecalculateAll: done, processed=%d, failed=%d", result.EntitiesProcessed, len(result.Errors))
	return result, nil
}

// recalculateEntityRange пересчитывает одну сущность за каждую дату диапазона
func (s *Service) recalculateEntityRange(ctx context.Context, entity domain.RatingEntity, today time.Time, daysBack int, cfg *domain.RatingConfig) error {
	for offset := daysBack - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)
		if _, err := s.Recalculate(ctx, entity, date, cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(req *SaveConfigRequest) error {
	weights := []int{req.ReviewsWeight, req.ProductivityWeight, req.LoyaltyWeight, req.DisciplineWeight}
	sum := 0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
		}
		sum += w
	}
	if sum != domain.WeightsTotal {
		return fmt.Errorf("%w: got %d", ErrInvalidWeights, sum)
	}

	if req.WindowDays < domain.MinWindowDays || req.WindowDays > domain.MaxWindowDays {
		return ErrInvalidWindow
	}

	if req.RecalcDaysBack != nil {
		if *req.RecalcDaysBack < domain.MinRecalcDaysBack || *req.RecalcDaysBack > domain.MaxRecalcDaysBack {
			return ErrInvalidDaysBack
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
