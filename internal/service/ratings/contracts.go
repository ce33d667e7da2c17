package ratings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RatingRepository интерфейс репозитория рейтингов
type RatingRepository interface {
	GetActiveConfig(ctx context.Context) (*domain.RatingConfig, error)
	DeactivateActive(ctx context.Context) error
	InsertConfig(ctx context.Context, cfg *domain.RatingConfig) (*domain.RatingConfig, error)
	GetDayMetrics(ctx context.Context, entity domain.RatingEntity, from, to time.Time) ([]*domain.DayMetrics, error)
	UpsertScore(ctx context.Context, score *domain.RatingScore) error
	ListActiveEntities(ctx context.Context) ([]domain.RatingEntity, error)
	LogRecalcError(ctx context.Context, recalcErr *domain.RecalcError) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
