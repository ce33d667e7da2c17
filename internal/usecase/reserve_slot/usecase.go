package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	scheduleClient "github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

// UseCase use case для резервирования слота (создания удержания)
type UseCase struct {
	bookingRepo    BookingRepository
	catalogClient  CatalogServiceClient
	scheduleClient ScheduleServiceClient
	holdTTL        time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	scheduleClient ScheduleServiceClient,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogClient:  catalogClient,
		scheduleClient: scheduleClient,
		holdTTL:        holdTTL,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет резервирование слота.
// Эксклюзивность слота обеспечивается constraint'ом БД, поэтому вставка
// выполняется одним условным запросом без блокировок на уровне приложения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: client=%d, staff=%d, branch=%d, service=%d, start=%s, duration=%d",
		req.ClientID, req.StaffID, req.BranchID, req.ServiceID, req.StartAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что интервал не в прошлом
	if err := validateStartNotInPast(req.StartAt, now); err != nil {
		uc.logger.Warn("ReserveSlot: start time %s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, err
	}

	endAt := req.StartAt.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// 4. Получаем услугу из каталога для денормализации
	service, err := uc.catalogClient.GetService(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ReserveSlot: service id=%d not found in branch id=%d", req.ServiceID, req.BranchID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем рабочее расписание мастера на дату начала
	schedule, err := uc.scheduleClient.GetStaffSchedule(ctx, req.StaffID, req.StartAt)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrStaffNotFound) {
			uc.logger.Warn("ReserveSlot: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get schedule for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}

	// 6. Интервал должен целиком лежать в рабочем расписании
	if !schedule.Covers(req.StartAt, endAt) {
		uc.logger.Warn("ReserveSlot: staff id=%d is not working at [%s, %s)",
			req.StaffID, req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
		return nil, ErrStaffNotWorking
	}

	// 7. Создаем удержание. Пересечение с активным бронированием мастера
	// отклоняется exclusion constraint'ом и приходит как ErrSlotConflict.
	booking := &domain.Booking{
		BusinessID:   req.BusinessID,
		BranchID:     req.BranchID,
		ServiceID:    req.ServiceID,
		StaffID:      req.StaffID,
		ClientID:     req.ClientID,
		StartAt:      req.StartAt,
		EndAt:        endAt,
		Status:       domain.StatusHold,
		ServiceName:  service.Name,
		ServicePrice: service.Price,
	}

	created, err := uc.bookingRepo.CreateHold(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			uc.logger.Warn("ReserveSlot: slot conflict for staff id=%d at [%s, %s)",
				req.StaffID, req.StartAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
			return nil, ErrSlotConflict
		}
		uc.logger.Error("ReserveSlot: failed to create hold: %v", err)
		return nil, fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveSlot: successfully created hold id=%d", created.ID)

	return &Response{
		ID:           created.ID,
		BusinessID:   created.BusinessID,
		BranchID:     created.BranchID,
		ServiceID:    created.ServiceID,
		StaffID:      created.StaffID,
		ClientID:     created.ClientID,
		StartAt:      created.StartAt,
		EndAt:        created.EndAt,
		Status:       string(created.Status),
		ExpiresAt:    created.CreatedAt.Add(uc.holdTTL),
		ServiceName:  created.ServiceName,
		ServicePrice: created.ServicePrice,
		CreatedAt:    created.CreatedAt,
	}, nil
}
