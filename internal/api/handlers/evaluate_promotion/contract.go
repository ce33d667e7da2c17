package evaluate_promotion

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type PromotionService interface {
	EvaluateForBooking(ctx context.Context, bookingID int64) (*domain.PromotionApplied, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
