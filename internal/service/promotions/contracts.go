package promotions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/clientservice"
)

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	ListActiveByBranch(ctx context.Context, branchID int64, onDate time.Time) ([]*domain.Promotion, error)
	GetUsage(ctx context.Context, clientID, promotionID int64) (*domain.ClientPromotionUsage, error)
	IncrementUsage(ctx context.Context, clientID, promotionID int64) error
	HasQualifyingReferral(ctx context.Context, clientID, branchID int64) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountCompletedVisits(ctx context.Context, clientID, branchID int64) (int, error)
}

// ClientServiceClient интерфейс клиента клиентского сервиса
type ClientServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientservice.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
