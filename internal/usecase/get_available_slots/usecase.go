package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	scheduleClient "github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

// UseCase use case для получения доступных слотов мастера
type UseCase struct {
	bookingRepo    BookingRepository
	catalogClient  CatalogServiceClient
	scheduleClient ScheduleServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	scheduleClient ScheduleServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogClient:  catalogClient,
		scheduleClient: scheduleClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, branch=%d, service=%d, date=%s",
		req.StaffID, req.BranchID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не может быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем услугу: её длительность задает шаг сетки слотов
	service, err := uc.catalogClient.GetService(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in branch id=%d", req.ServiceID, req.BranchID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем рабочее расписание мастера
	schedule, err := uc.scheduleClient.GetStaffSchedule(ctx, req.StaffID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}

	// Мастер не работает в этот день
	if !schedule.IsWorking {
		uc.logger.Info("GetAvailableSlots: staff id=%d is not working on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return &Response{
			StaffID:         req.StaffID,
			Date:            req.Date,
			DurationMinutes: service.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 6. Получаем активные бронирования мастера на дату
	bookings, err := uc.bookingRepo.ListActiveForStaffOnDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 7. Строим сетку и фильтруем занятые и прошедшие слоты
	slots := generateSlots(schedule, service.DurationMinutes)
	available := filterAvailable(slots, bookings, now)

	uc.logger.Info("GetAvailableSlots: staff=%d, date=%s: %d of %d slots available",
		req.StaffID, req.Date.Format(domain.DateFormat), len(available), len(slots))

	return &Response{
		StaffID:         req.StaffID,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		Slots:           available,
	}, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
