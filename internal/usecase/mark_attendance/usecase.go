package mark_attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case для отметки посещения и закрытия визита
type UseCase struct {
	bookingRepo  BookingRepository
	promotions   PromotionEngine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	promotions PromotionEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		promotions:   promotions,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отмечает посещение: confirmed -> paid / no_show.
// Переход в paid и фиксация акции выполняются в одной транзакции.
// Если движок акций падает, транзакция откатывается и переход повторяется
// без акции: визит не должен зависнуть в confirmed из-за сбоя акций.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkAttendance: booking=%d, attended=%t", req.BookingID, req.Attended)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	resp, err := uc.settle(ctx, req, true)
	if err == nil {
		return resp, nil
	}

	var promoFail *promotionFailure
	if !errors.As(err, &promoFail) {
		return nil, err
	}

	// Сбой движка акций: повторяем переход без акции
	uc.logger.Error("MarkAttendance: promotion failed for booking=%d, settling without promotion: %v",
		req.BookingID, promoFail.cause)

	resp, err = uc.settle(ctx, req, false)
	if err != nil {
		return nil, err
	}

	resp.PromotionError = ptr.Ptr(promoFail.cause.Error())
	return resp, nil
}

// promotionFailure оборачивает ошибку движка акций для отката транзакции
type promotionFailure struct {
	cause error
}

func (e *promotionFailure) Error() string {
	return fmt.Sprintf("%v: %v", errPromotionFailed, e.cause)
}

func (e *promotionFailure) Unwrap() error {
	return errPromotionFailed
}

// settle выполняет переход статуса в транзакции, опционально применяя акцию
func (uc *UseCase) settle(ctx context.Context, req *Request, withPromotion bool) (*Response, error) {
	now := uc.timeProvider.Now()

	target := domain.StatusNoShow
	if req.Attended {
		target = domain.StatusPaid
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("MarkAttendance: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Повторная отметка с тем же результатом идемпотентна
		if booking.IsSettled() {
			if booking.Status == target {
				uc.logger.Info("MarkAttendance: booking id=%d already settled as %s", booking.ID, booking.Status)
				resp = &Response{
					BookingID:        booking.ID,
					Status:           string(booking.Status),
					SettledAt:        booking.UpdatedAt,
					PromotionApplied: promotionResultFromDomain(booking.PromotionApplied),
				}
				return nil
			}
			uc.logger.Warn("MarkAttendance: booking id=%d already settled as %s, requested %s",
				booking.ID, booking.Status, target)
			return ErrInvalidTransition
		}

		if !booking.HasStarted(now) {
			uc.logger.Warn("MarkAttendance: booking id=%d has not started yet", booking.ID)
			return ErrBookingNotStarted
		}

		if booking.Status != domain.StatusConfirmed {
			uc.logger.Warn("MarkAttendance: booking id=%d has status %s, expected confirmed",
				booking.ID, booking.Status)
			return ErrInvalidTransition
		}

		var promo *domain.PromotionApplied
		if withPromotion && target == domain.StatusPaid {
			promo, err = uc.promotions.Apply(txCtx, booking)
			if err != nil {
				// Откатываем транзакцию: неудачный запрос мог испортить её состояние
				return &promotionFailure{cause: err}
			}
		}

		if err := uc.bookingRepo.SetSettled(txCtx, booking.ID, target, promo); err != nil {
			uc.logger.Error("MarkAttendance: failed to settle booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to settle booking: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:        booking.ID,
			Status:           string(target),
			SettledAt:        now,
			PromotionApplied: promotionResultFromDomain(promo),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("MarkAttendance: booking id=%d settled as %s", resp.BookingID, resp.Status)
	return resp, nil
}
