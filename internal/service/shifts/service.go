package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shift"
)

// ItemInput входная позиция смены
type ItemInput struct {
	ClientName        string
	ServiceName       string
	ServiceAmount     float64
	ConsumablesAmount float64
}

// OpenRequest запрос на открытие смены
type OpenRequest struct {
	StaffID       int64
	BranchID      int64
	Date          time.Time
	PercentMaster float64
	PercentSalon  float64
	HourlyRate    *float64
}

// CloseResult итоги закрытия смены
type CloseResult struct {
	ShiftID           int64
	TotalAmount       float64
	ConsumablesAmount float64
	MasterShare       float64
	SalonShare        float64
	TopupAmount       float64
}

// Service сверка смен: открытие, добавление позиций, закрытие с расчетом долей
type Service struct {
	shiftRepo    ShiftRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(
	shiftRepo ShiftRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open открывает смену мастера на дату.
// Инвариант percent_master + percent_salon = 100 проверяется при записи.
func (s *Service) Open(ctx context.Context, req *OpenRequest) (*domain.Shift, error) {
	s.logger.Info("Open: opening shift for staff=%d, branch=%d, date=%s",
		req.StaffID, req.BranchID, req.Date.Format(domain.DateFormat))

	if req.StaffID <= 0 || req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: staffID and branchID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.PercentMaster+req.PercentSalon != 100 {
		s.logger.Warn("Open: invalid percent split %.2f/%.2f for staff=%d",
			req.PercentMaster, req.PercentSalon, req.StaffID)
		return nil, ErrSettlementInvariant
	}
	if req.PercentMaster < 0 || req.PercentSalon < 0 {
		return nil, fmt.Errorf("%w: percents must be non-negative", ErrInvalidInput)
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must be non-negative", ErrInvalidInput)
	}

	shift := &domain.Shift{
		StaffID:       req.StaffID,
		BranchID:      req.BranchID,
		Date:          req.Date,
		PercentMaster: req.PercentMaster,
		PercentSalon:  req.PercentSalon,
		HourlyRate:    req.HourlyRate,
	}

	created, err := s.shiftRepo.Create(ctx, shift)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftAlreadyOpen) {
			s.logger.Warn("Open: shift already open for staff=%d, date=%s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return nil, ErrShiftAlreadyOpen
		}
		s.logger.Error("Open: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Open: shift id=%d opened", created.ID)
	return created, nil
}

// AddItems добавляет позиции к открытой смене и пересчитывает итоги.
// Вставка позиций и обновление итогов выполняются в одной транзакции.
func (s *Service) AddItems(ctx context.Context, shiftID int64, inputs []ItemInput) (*domain.Shift, error) {
	s.logger.Info("AddItems: adding %d items to shift id=%d", len(inputs), shiftID)

	items, err := toDomainItems(shiftID, inputs)
	if err != nil {
		return nil, err
	}

	var result *domain.Shift

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		shift, err := s.getOpenShift(txCtx, shiftID)
		if err != nil {
			return err
		}

		if err := s.shiftRepo.AddItems(txCtx, shiftID, items); err != nil {
			return fmt.Errorf("%w: AddItems - insert items: %v", ErrInternal, err)
		}

		hours := s.timeProvider.Now().Sub(shift.OpenedAt).Hours()
		if err := s.recomputeLocked(txCtx, shift, hours); err != nil {
			return err
		}

		result = shift
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("AddItems: shift id=%d totals updated, total=%.2f", shiftID, result.TotalAmount)
	return result, nil
}

// Close закрывает смену: добавляет финальные позиции, пересчитывает итоги
// и переводит смену в closed. Переход необратим.
func (s *Service) Close(ctx context.Context, shiftID int64, inputs []ItemInput) (*CloseResult, error) {
	s.logger.Info("Close: closing shift id=%d with %d items", shiftID, len(inputs))

	items, err := toDomainItems(shiftID, inputs)
	if err != nil {
		return nil, err
	}

	var result *CloseResult

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		shift, err := s.getOpenShift(txCtx, shiftID)
		if err != nil {
			return err
		}

		if len(items) > 0 {
			if err := s.shiftRepo.AddItems(txCtx, shiftID, items); err != nil {
				return fmt.Errorf("%w: Close - insert items: %v", ErrInternal, err)
			}
		}

		hours := s.timeProvider.Now().Sub(shift.OpenedAt).Hours()
		if err := s.recomputeLocked(txCtx, shift, hours); err != nil {
			return err
		}

		if err := s.shiftRepo.Close(txCtx, shiftID); err != nil {
			return fmt.Errorf("%w: Close - close shift: %v", ErrInternal, err)
		}

		result = &CloseResult{
			ShiftID:           shift.ID,
			TotalAmount:       shift.TotalAmount,
			ConsumablesAmount: shift.ConsumablesAmount,
			MasterShare:       shift.MasterShare,
			SalonShare:        shift.SalonShare,
			TopupAmount:       shift.TopupAmount,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Close: shift id=%d closed, master=%.2f, salon=%.2f, topup=%.2f",
		shiftID, result.MasterShare, result.SalonShare, result.TopupAmount)
	return result, nil
}

// Recompute пересчитывает итоги смены из текущего набора позиций.
// Реентерабельно: повторный запуск на неизменном наборе дает те же итоги.
func (s *Service) Recompute(ctx context.Context, shiftID int64) (*domain.Shift, error) {
	var result *domain.Shift

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		shift, err := s.shiftRepo.GetByID(txCtx, shiftID)
		if err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				return ErrShiftNotFound
			}
			return fmt.Errorf("%w: Recompute - repository error: %v", ErrInternal, err)
		}

		hours := shift.HoursWorked
		if shift.ClosedAt != nil {
			hours = shift.ClosedAt.Sub(shift.OpenedAt).Hours()
		}

		if err := s.recomputeLocked(txCtx, shift, hours); err != nil {
			return err
		}

		result = shift
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// getOpenShift получает смену с блокировкой и проверяет, что она открыта
func (s *Service) getOpenShift(ctx context.Context, shiftID int64) (*domain.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("%w: get shift: %v", ErrInternal, err)
	}

	if shift.IsClosed() {
		s.logger.Warn("shift id=%d is closed, mutation rejected", shiftID)
		return nil, ErrShiftClosed
	}

	return shift, nil
}

// recomputeLocked пересчитывает и сохраняет итоги уже заблокированной смены
func (s *Service) recomputeLocked(ctx context.Context, shift *domain.Shift, hoursWorked float64) error {
	items, err := s.shiftRepo.ListItems(ctx, shift.ID)
	if err != nil {
		return fmt.Errorf("%w: list items: %v", ErrInternal, err)
	}

	settlement, err := computeSettlement(shift, items, hoursWorked)
	if err != nil {
		return err
	}

	shift.TotalAmount = settlement.TotalAmount
	shift.ConsumablesAmount = settlement.ConsumablesAmount
	shift.MasterShare = settlement.MasterShare
	shift.SalonShare = settlement.SalonShare
	shift.HoursWorked = settlement.HoursWorked
	shift.GuaranteedAmount = settlement.GuaranteedAmount
	shift.TopupAmount = settlement.TopupAmount

	if err := s.shiftRepo.UpdateTotals(ctx, shift); err != nil {
		return fmt.Errorf("%w: update totals: %v", ErrInternal, err)
	}

	return nil
}

func toDomainItems(shiftID int64, inputs []ItemInput) ([]*domain.ShiftItem, error) {
	items := make([]*domain.ShiftItem, 0, len(inputs))
	for _, in := range inputs {
		if in.ServiceAmount < 0 || in.ConsumablesAmount < 0 {
			return nil, fmt.Errorf("%w: item amounts must be non-negative", ErrInvalidInput)
		}
		if in.ServiceName == "" {
			return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
		}
		items = append(items, &domain.ShiftItem{
			ShiftID:           shiftID,
			ClientName:        in.ClientName,
			ServiceName:       in.ServiceName,
			ServiceAmount:     in.ServiceAmount,
			ConsumablesAmount: in.ConsumablesAmount,
		})
	}
	return items, nil
}
