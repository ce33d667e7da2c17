package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveForStaffOnDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, branchID, serviceID int64) (*catalogservice.Service, error)
}

// ScheduleServiceClient интерфейс клиента сервиса расписаний
type ScheduleServiceClient interface {
	GetStaffSchedule(ctx context.Context, staffID int64, date time.Time) (*scheduleservice.StaffDaySchedule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
