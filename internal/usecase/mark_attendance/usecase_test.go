package mark_attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingstore "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubBookingRepo struct {
	booking *domain.Booking

	settledStatus *domain.BookingStatus
	settledPromo  *domain.PromotionApplied
	settleCalls   int
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingstore.ErrBookingNotFound
	}
	b := *s.booking
	return &b, nil
}

func (s *stubBookingRepo) SetSettled(ctx context.Context, id int64, status domain.BookingStatus, promo *domain.PromotionApplied) error {
	s.settleCalls++
	s.settledStatus = &status
	s.settledPromo = promo
	return nil
}

type stubPromotions struct {
	result *domain.PromotionApplied
	err    error
	calls  int
}

func (s *stubPromotions) Apply(ctx context.Context, booking *domain.Booking) (*domain.PromotionApplied, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

var testNow = time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:           1,
		ClientID:     10,
		BranchID:     20,
		Status:       domain.StatusConfirmed,
		ServicePrice: 1500,
		StartAt:      testNow.Add(-2 * time.Hour),
		EndAt:        testNow.Add(-time.Hour),
		UpdatedAt:    testNow.Add(-time.Hour),
	}
}

func newTestUseCase(repo *stubBookingRepo, promos *stubPromotions) *UseCase {
	uc := NewUseCase(repo, promos, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_AttendedWithPromotion(t *testing.T) {
	repo := &stubBookingRepo{booking: confirmedBooking()}
	promos := &stubPromotions{
		result: &domain.PromotionApplied{
			Type:            domain.PromotionFirstVisitDiscount,
			OriginalAmount:  1500,
			FinalAmount:     1275,
			DiscountPercent: 15,
		},
	}
	uc := newTestUseCase(repo, promos)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(domain.StatusPaid) {
		t.Errorf("Status = %s, want paid", resp.Status)
	}
	if resp.PromotionApplied == nil || resp.PromotionApplied.FinalAmount != 1275 {
		t.Errorf("PromotionApplied = %+v, want final amount 1275", resp.PromotionApplied)
	}
	if resp.PromotionError != nil {
		t.Errorf("PromotionError = %v, want nil", *resp.PromotionError)
	}
	if repo.settledPromo == nil {
		t.Error("promotion was not passed to the repository")
	}
}

func TestExecute_NoShowSkipsPromotion(t *testing.T) {
	repo := &stubBookingRepo{booking: confirmedBooking()}
	promos := &stubPromotions{}
	uc := newTestUseCase(repo, promos)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(domain.StatusNoShow) {
		t.Errorf("Status = %s, want no_show", resp.Status)
	}
	if promos.calls != 0 {
		t.Errorf("promotion engine called %d times for no_show, want 0", promos.calls)
	}
}

func TestExecute_PromotionFailureSettlesWithout(t *testing.T) {
	repo := &stubBookingRepo{booking: confirmedBooking()}
	promos := &stubPromotions{err: errors.New("client service unavailable")}
	uc := newTestUseCase(repo, promos)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(domain.StatusPaid) {
		t.Errorf("Status = %s, want paid", resp.Status)
	}
	if resp.PromotionApplied != nil {
		t.Errorf("PromotionApplied = %+v, want nil", resp.PromotionApplied)
	}
	if resp.PromotionError == nil {
		t.Fatal("PromotionError must carry the failure cause")
	}
	// Первая попытка откатилась, вторая прошла без акции
	if promos.calls != 1 {
		t.Errorf("promotion engine called %d times, want 1", promos.calls)
	}
	if repo.settledPromo != nil {
		t.Errorf("settled promo = %+v, want nil", repo.settledPromo)
	}
}

func TestExecute_IdempotentRemark(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusPaid
	repo := &stubBookingRepo{booking: booking}
	uc := newTestUseCase(repo, &stubPromotions{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(domain.StatusPaid) {
		t.Errorf("Status = %s, want paid", resp.Status)
	}
	if repo.settleCalls != 0 {
		t.Errorf("repository settled %d times on idempotent re-mark, want 0", repo.settleCalls)
	}
}

func TestExecute_SettledOppositeDirection(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusNoShow
	uc := newTestUseCase(&stubBookingRepo{booking: booking}, &stubPromotions{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestExecute_NotStarted(t *testing.T) {
	booking := confirmedBooking()
	booking.StartAt = testNow.Add(time.Hour)
	booking.EndAt = testNow.Add(2 * time.Hour)
	uc := newTestUseCase(&stubBookingRepo{booking: booking}, &stubPromotions{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if !errors.Is(err, ErrBookingNotStarted) {
		t.Errorf("got %v, want ErrBookingNotStarted", err)
	}
}

func TestExecute_FromHold(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusHold
	uc := newTestUseCase(&stubBookingRepo{booking: booking}, &stubPromotions{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Attended: true})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubPromotions{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, Attended: true})
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubPromotions{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, Attended: true})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
