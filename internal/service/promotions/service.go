package promotions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingstore "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
)

// Service движок акций.
// Выбирает ровно одну подходящую акцию филиала по порядку приоритета
// (domain.PromotionPrecedence) и считает скидку. Акции не суммируются.
type Service struct {
	promoRepo   PromotionRepository
	bookingRepo BookingRepository
	clients     ClientServiceClient
	logger      Logger
}

// NewService создает новый экземпляр движка акций
func NewService(
	promoRepo PromotionRepository,
	bookingRepo BookingRepository,
	clients ClientServiceClient,
	logger Logger,
) *Service {
	return &Service{
		promoRepo:   promoRepo,
		bookingRepo: bookingRepo,
		clients:     clients,
		logger:      logger,
	}
}

// evaluation результат подбора акции: сама акция и посчитанная скидка
type evaluation struct {
	promotion *domain.Promotion
	applied   *domain.PromotionApplied
}

// Evaluate подбирает акцию для бронирования без побочных эффектов (dry-run).
// Возвращает nil без ошибки, если ни одна акция не подходит.
func (s *Service) Evaluate(ctx context.Context, booking *domain.Booking) (*domain.PromotionApplied, error) {
	result, err := s.evaluate(ctx, booking)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.applied, nil
}

// EvaluateForBooking подбирает акцию для бронирования по его ID без побочных
// эффектов. Используется для предпросмотра скидки до отметки посещения.
func (s *Service) EvaluateForBooking(ctx context.Context, bookingID int64) (*domain.PromotionApplied, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: EvaluateForBooking - get booking: %v", ErrInternal, err)
	}

	return s.Evaluate(ctx, booking)
}

// Apply подбирает акцию и фиксирует её применение: инкремент счетчика использования
// и результат для записи в бронирование. Вызывается в одной транзакции с переходом
// бронирования в paid, чтобы оплаченный визит не остался без зафиксированной акции.
// Возвращает nil без ошибки, если ни одна акция не подходит.
func (s *Service) Apply(ctx context.Context, booking *domain.Booking) (*domain.PromotionApplied, error) {
	result, err := s.evaluate(ctx, booking)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	if err := s.promoRepo.IncrementUsage(ctx, booking.ClientID, result.promotion.ID); err != nil {
		s.logger.Error("Apply: failed to increment usage: client=%d, promotion=%d: %v",
			booking.ClientID, result.promotion.ID, err)
		return nil, fmt.Errorf("%w: increment usage: %v", ErrInternal, err)
	}

	s.logger.Info("Apply: promotion applied: booking=%d, client=%d, type=%s, final=%.2f",
		booking.ID, booking.ClientID, result.promotion.Type, result.applied.FinalAmount)

	return result.applied, nil
}

// evaluate подбирает первую подходящую акцию в порядке приоритета
func (s *Service) evaluate(ctx context.Context, booking *domain.Booking) (*evaluation, error) {
	onDate := booking.StartAt

	promos, err := s.promoRepo.ListActiveByBranch(ctx, booking.BranchID, onDate)
	if err != nil {
		return nil, fmt.Errorf("%w: list active promotions: %v", ErrEvaluationFailed, err)
	}
	if len(promos) == 0 {
		return nil, nil
	}

	byType := make(map[domain.PromotionType]*domain.Promotion, len(promos))
	for _, p := range promos {
		// Первая акция каждого типа; по одному активному типу на филиал
		if _, ok := byType[p.Type]; !ok {
			byType[p.Type] = p
		}
	}

	for _, promoType := range domain.PromotionPrecedence {
		promo, ok := byType[promoType]
		if !ok {
			continue
		}

		applied, eligible, err := s.checkEligibility(ctx, booking, promo)
		if err != nil {
			return nil, err
		}
		if eligible {
			return &evaluation{promotion: promo, applied: applied}, nil
		}
	}

	return nil, nil
}

// checkEligibility проверяет применимость конкретной акции и считает скидку
func (s *Service) checkEligibility(ctx context.Context, booking *domain.Booking, promo *domain.Promotion) (*domain.PromotionApplied, bool, error) {
	switch promo.Type {
	case domain.PromotionReferralFree:
		return s.checkReferral(ctx, booking, promo, 100)

	case domain.PromotionReferralDiscount50:
		return s.checkReferral(ctx, booking, promo, 50)

	case domain.PromotionBirthdayDiscount:
		return s.checkBirthday(ctx, booking, promo)

	case domain.PromotionFirstVisitDiscount:
		return s.checkFirstVisit(ctx, booking, promo)

	case domain.PromotionFreeAfterNVisits:
		return s.checkFreeAfterNVisits(ctx, booking, promo)

	default:
		s.logger.Warn("checkEligibility: unknown promotion type %q, promotion=%d", promo.Type, promo.ID)
		return nil, false, nil
	}
}

// checkReferral реферальные акции применяются один раз на реферальную связь
func (s *Service) checkReferral(ctx context.Context, booking *domain.Booking, promo *domain.Promotion, percent float64) (*domain.PromotionApplied, bool, error) {
	hasReferral, err := s.promoRepo.HasQualifyingReferral(ctx, booking.ClientID, booking.BranchID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: check referral: %v", ErrEvaluationFailed, err)
	}
	if !hasReferral {
		return nil, false, nil
	}

	usage, err := s.promoRepo.GetUsage(ctx, booking.ClientID, promo.ID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: get usage: %v", ErrEvaluationFailed, err)
	}
	if usage.UsageCount > 0 {
		return nil, false, nil
	}

	return s.buildResult(promo.Type, booking.ServicePrice, percent), true, nil
}

// checkBirthday скидка действует в окне вокруг дня рождения клиента
func (s *Service) checkBirthday(ctx context.Context, booking *domain.Booking, promo *domain.Promotion) (*domain.PromotionApplied, bool, error) {
	params := promo.Params.Birthday
	if params == nil {
		s.logger.Warn("checkBirthday: promotion=%d has no birthday params", promo.ID)
		return nil, false, nil
	}

	client, err := s.clients.GetClient(ctx, booking.ClientID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: get client profile: %v", ErrEvaluationFailed, err)
	}

	if !client.HasBirthdayWithin(booking.StartAt, params.WindowDays) {
		return nil, false, nil
	}

	return s.buildResult(promo.Type, booking.ServicePrice, params.DiscountPercent), true, nil
}

// checkFirstVisit скидка только на первый завершенный визит в филиале.
// Текущий визит еще не в статусе paid, поэтому порог — ноль завершенных.
func (s *Service) checkFirstVisit(ctx context.Context, booking *domain.Booking, promo *domain.Promotion) (*domain.PromotionApplied, bool, error) {
	params := promo.Params.FirstVisit
	if params == nil {
		s.logger.Warn("checkFirstVisit: promotion=%d has no first visit params", promo.ID)
		return nil, false, nil
	}

	completed, err := s.bookingRepo.CountCompletedVisits(ctx, booking.ClientID, booking.BranchID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: count completed visits: %v", ErrEvaluationFailed, err)
	}
	if completed != 0 {
		return nil, false, nil
	}

	return s.buildResult(promo.Type, booking.ServicePrice, params.DiscountPercent), true, nil
}

// checkFreeAfterNVisits каждый N-й завершенный визит бесплатен.
// Текущий визит учитывается: при visit_count=5 бесплатны 5-й, 10-й, 15-й визиты.
func (s *Service) checkFreeAfterNVisits(ctx context.Context, booking *domain.Booking, promo *domain.Promotion) (*domain.PromotionApplied, bool, error) {
	params := promo.Params.FreeAfterNVisits
	if params == nil || params.VisitCount <= 0 {
		s.logger.Warn("checkFreeAfterNVisits: promotion=%d has invalid visit count", promo.ID)
		return nil, false, nil
	}

	completed, err := s.bookingRepo.CountCompletedVisits(ctx, booking.ClientID, booking.BranchID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: count completed visits: %v", ErrEvaluationFailed, err)
	}

	if (completed+1)%params.VisitCount != 0 {
		return nil, false, nil
	}

	return s.buildResult(promo.Type, booking.ServicePrice, 100), true, nil
}

func (s *Service) buildResult(promoType domain.PromotionType, originalAmount, percent float64) *domain.PromotionApplied {
	return &domain.PromotionApplied{
		Type:            promoType,
		OriginalAmount:  originalAmount,
		FinalAmount:     domain.ApplyDiscount(originalAmount, percent),
		DiscountPercent: percent,
	}
}
