package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// Service стейт-машина бронирований.
// Переходы: hold -> confirmed -> {paid | no_show}, hold|confirmed -> cancelled.
// Отметка посещения (paid/no_show) вынесена в usecase mark_attendance,
// так как требует атомарного применения акции.
type Service struct {
	bookingRepo BookingRepository
	notifier    NotifyServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Confirm переводит бронирование из hold в confirmed.
// Чтение и обновление выполняются в одной транзакции (строка блокируется),
// чтобы конкурентные confirm/cancel не перетирали друг друга.
// После коммита отправляется best-effort уведомление.
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	var confirmed *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeConfirmed() {
			s.logger.Warn("Confirm: booking id=%d cannot be confirmed from status=%s", id, booking.Status)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		confirmed = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: booking id=%d confirmed", id)

	// Уведомление после коммита; ошибка доставки только логируется
	go s.notifyConfirmed(confirmed)

	return models.FromDomainBooking(confirmed), nil
}

// Cancel отменяет бронирование. Допустимо только из hold или confirmed;
// расчитанные визиты (paid/no_show) неизменяемы.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled from status=%s", id, booking.Status)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.Cancel(txCtx, id, reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(cancelled), nil
}

func (s *Service) notifyConfirmed(booking *domain.Booking) {
	event := notifyservice.Event{
		Type:      "booking_confirmed",
		BookingID: booking.ID,
		ClientID:  booking.ClientID,
		StaffID:   booking.StaffID,
	}

	if err := s.notifier.Send(context.Background(), event); err != nil {
		s.logger.Warn("notifyConfirmed: failed to send notification for booking id=%d: %v", booking.ID, err)
	}
}
