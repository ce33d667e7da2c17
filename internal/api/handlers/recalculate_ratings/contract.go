package recalculate_ratings

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/ratings"
)

type RatingService interface {
	RecalculateAll(ctx context.Context, daysBack int) (*ratings.BatchResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
