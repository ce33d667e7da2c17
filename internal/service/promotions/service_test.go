package promotions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/clientservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubPromoRepo struct {
	promos        []*domain.Promotion
	usage         map[int64]int
	hasReferral   bool
	incrementedID []int64
}

func (s *stubPromoRepo) ListActiveByBranch(ctx context.Context, branchID int64, onDate time.Time) ([]*domain.Promotion, error) {
	return s.promos, nil
}

func (s *stubPromoRepo) GetUsage(ctx context.Context, clientID, promotionID int64) (*domain.ClientPromotionUsage, error) {
	return &domain.ClientPromotionUsage{
		ClientID:    clientID,
		PromotionID: promotionID,
		UsageCount:  s.usage[promotionID],
	}, nil
}

func (s *stubPromoRepo) IncrementUsage(ctx context.Context, clientID, promotionID int64) error {
	s.incrementedID = append(s.incrementedID, promotionID)
	return nil
}

func (s *stubPromoRepo) HasQualifyingReferral(ctx context.Context, clientID, branchID int64) (bool, error) {
	return s.hasReferral, nil
}

type stubBookingRepo struct {
	booking         *domain.Booking
	completedVisits int
	countErr        error
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, errors.New("not found")
	}
	return s.booking, nil
}

func (s *stubBookingRepo) CountCompletedVisits(ctx context.Context, clientID, branchID int64) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.completedVisits, nil
}

type stubClients struct {
	client *clientservice.Client
	err    error
}

func (s *stubClients) GetClient(ctx context.Context, clientID int64) (*clientservice.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           1,
		ClientID:     10,
		BranchID:     20,
		ServicePrice: 2000,
		StartAt:      time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func promo(id int64, promoType domain.PromotionType, params domain.PromotionParams) *domain.Promotion {
	return &domain.Promotion{
		ID:       id,
		BranchID: 20,
		Type:     promoType,
		Params:   params,
		IsActive: true,
	}
}

func TestEvaluate_PrecedenceReferralFreeWins(t *testing.T) {
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(1, domain.PromotionBirthdayDiscount, domain.PromotionParams{
				Birthday: &domain.BirthdayDiscountParams{DiscountPercent: 20, WindowDays: 3},
			}),
			promo(2, domain.PromotionReferralFree, domain.PromotionParams{}),
		},
		usage:       map[int64]int{},
		hasReferral: true,
	}
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	svc := NewService(promoRepo, &stubBookingRepo{}, &stubClients{
		client: &clientservice.Client{ID: 10, Birthday: &birthday},
	}, nopLogger{})

	applied, err := svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied == nil {
		t.Fatal("expected a promotion to apply")
	}
	if applied.Type != domain.PromotionReferralFree {
		t.Errorf("applied type = %s, want referral_free", applied.Type)
	}
	if applied.FinalAmount != 0 {
		t.Errorf("FinalAmount = %.2f, want 0.00", applied.FinalAmount)
	}
	if applied.OriginalAmount != 2000 {
		t.Errorf("OriginalAmount = %.2f, want 2000.00", applied.OriginalAmount)
	}
}

func TestEvaluate_ReferralUsedOnce(t *testing.T) {
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(1, domain.PromotionReferralDiscount50, domain.PromotionParams{}),
		},
		usage:       map[int64]int{1: 1},
		hasReferral: true,
	}
	svc := NewService(promoRepo, &stubBookingRepo{}, &stubClients{}, nopLogger{})

	applied, err := svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != nil {
		t.Errorf("referral already used, expected nil, got %+v", applied)
	}
}

func TestEvaluate_FreeAfterNVisits(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		wantFree  bool
	}{
		{"fifth visit free", 4, true},
		{"tenth visit free", 9, true},
		{"fourth visit not free", 3, false},
		{"first visit not free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promoRepo := &stubPromoRepo{
				promos: []*domain.Promotion{
					promo(1, domain.PromotionFreeAfterNVisits, domain.PromotionParams{
						FreeAfterNVisits: &domain.FreeAfterNVisitsParams{VisitCount: 5},
					}),
				},
				usage: map[int64]int{},
			}
			svc := NewService(promoRepo, &stubBookingRepo{completedVisits: tt.completed}, &stubClients{}, nopLogger{})

			applied, err := svc.Evaluate(context.Background(), testBooking())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantFree {
				if applied == nil {
					t.Fatal("expected free visit")
				}
				if applied.FinalAmount != 0 {
					t.Errorf("FinalAmount = %.2f, want 0.00", applied.FinalAmount)
				}
			} else if applied != nil {
				t.Errorf("expected no promotion, got %+v", applied)
			}
		})
	}
}

func TestEvaluate_FirstVisitOnlyWhenNoCompleted(t *testing.T) {
	newRepo := func() *stubPromoRepo {
		return &stubPromoRepo{
			promos: []*domain.Promotion{
				promo(1, domain.PromotionFirstVisitDiscount, domain.PromotionParams{
					FirstVisit: &domain.FirstVisitDiscountParams{DiscountPercent: 15},
				}),
			},
			usage: map[int64]int{},
		}
	}

	svc := NewService(newRepo(), &stubBookingRepo{completedVisits: 0}, &stubClients{}, nopLogger{})
	applied, err := svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied == nil || applied.FinalAmount != 1700 {
		t.Errorf("first visit: got %+v, want 15%% off 2000", applied)
	}

	svc = NewService(newRepo(), &stubBookingRepo{completedVisits: 1}, &stubClients{}, nopLogger{})
	applied, err = svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != nil {
		t.Errorf("returning client: expected nil, got %+v", applied)
	}
}

func TestEvaluate_BirthdayWindow(t *testing.T) {
	birthday := time.Date(1985, 6, 17, 0, 0, 0, 0, time.UTC)
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(1, domain.PromotionBirthdayDiscount, domain.PromotionParams{
				Birthday: &domain.BirthdayDiscountParams{DiscountPercent: 25, WindowDays: 3},
			}),
		},
		usage: map[int64]int{},
	}
	svc := NewService(promoRepo, &stubBookingRepo{}, &stubClients{
		client: &clientservice.Client{ID: 10, Birthday: &birthday},
	}, nopLogger{})

	// 15 июня при дне рождения 17 июня попадает в окно +-3 дня
	applied, err := svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied == nil || applied.FinalAmount != 1500 {
		t.Errorf("got %+v, want 25%% off 2000", applied)
	}
}

func TestEvaluate_NoStacking(t *testing.T) {
	// Клиент проходит и по первому визиту, и по дню рождения: применяется одна акция
	birthday := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(1, domain.PromotionFirstVisitDiscount, domain.PromotionParams{
				FirstVisit: &domain.FirstVisitDiscountParams{DiscountPercent: 15},
			}),
			promo(2, domain.PromotionBirthdayDiscount, domain.PromotionParams{
				Birthday: &domain.BirthdayDiscountParams{DiscountPercent: 25, WindowDays: 3},
			}),
		},
		usage: map[int64]int{},
	}
	svc := NewService(promoRepo, &stubBookingRepo{completedVisits: 0}, &stubClients{
		client: &clientservice.Client{ID: 10, Birthday: &birthday},
	}, nopLogger{})

	applied, err := svc.Evaluate(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied == nil {
		t.Fatal("expected a promotion")
	}
	// birthday_discount раньше first_visit_discount в порядке приоритета
	if applied.Type != domain.PromotionBirthdayDiscount {
		t.Errorf("applied type = %s, want birthday_discount", applied.Type)
	}
}

func TestApply_IncrementsUsage(t *testing.T) {
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(7, domain.PromotionReferralFree, domain.PromotionParams{}),
		},
		usage:       map[int64]int{},
		hasReferral: true,
	}
	svc := NewService(promoRepo, &stubBookingRepo{}, &stubClients{}, nopLogger{})

	applied, err := svc.Apply(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied == nil {
		t.Fatal("expected a promotion")
	}
	if len(promoRepo.incrementedID) != 1 || promoRepo.incrementedID[0] != 7 {
		t.Errorf("incremented usage for %v, want exactly [7]", promoRepo.incrementedID)
	}
}

func TestEvaluate_NoSideEffects(t *testing.T) {
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(7, domain.PromotionReferralFree, domain.PromotionParams{}),
		},
		usage:       map[int64]int{},
		hasReferral: true,
	}
	svc := NewService(promoRepo, &stubBookingRepo{}, &stubClients{}, nopLogger{})

	if _, err := svc.Evaluate(context.Background(), testBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(promoRepo.incrementedID) != 0 {
		t.Errorf("dry-run must not increment usage, got %v", promoRepo.incrementedID)
	}
}

func TestEvaluate_EvaluationFailure(t *testing.T) {
	promoRepo := &stubPromoRepo{
		promos: []*domain.Promotion{
			promo(1, domain.PromotionFreeAfterNVisits, domain.PromotionParams{
				FreeAfterNVisits: &domain.FreeAfterNVisitsParams{VisitCount: 5},
			}),
		},
		usage: map[int64]int{},
	}
	bookingRepo := &stubBookingRepo{countErr: errors.New("db down")}
	svc := NewService(promoRepo, bookingRepo, &stubClients{}, nopLogger{})

	_, err := svc.Evaluate(context.Background(), testBooking())
	if !errors.Is(err, ErrEvaluationFailed) {
		t.Errorf("got %v, want ErrEvaluationFailed", err)
	}
}
