package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingstore "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifyservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubBookingRepo struct {
	booking       *domain.Booking
	updatedStatus *domain.BookingStatus
	cancelReason  *string
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingstore.ErrBookingNotFound
	}
	b := *s.booking
	return &b, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	s.updatedStatus = &status
	return nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	s.cancelReason = &reason
	return nil
}

type stubNotifier struct {
	events chan notifyservice.Event
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{events: make(chan notifyservice.Event, 1)}
}

func (s *stubNotifier) Send(ctx context.Context, event notifyservice.Event) error {
	s.events <- event
	return nil
}

func holdBooking() *domain.Booking {
	return &domain.Booking{
		ID:       1,
		ClientID: 10,
		StaffID:  30,
		Status:   domain.StatusHold,
		StartAt:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestConfirm_FromHold(t *testing.T) {
	repo := &stubBookingRepo{booking: holdBooking()}
	notifier := newStubNotifier()
	svc := NewService(repo, notifier, fakeTxManager{}, nopLogger{})

	resp, err := svc.Confirm(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(domain.StatusConfirmed) {
		t.Errorf("Status = %s, want confirmed", resp.Status)
	}
	if repo.updatedStatus == nil || *repo.updatedStatus != domain.StatusConfirmed {
		t.Errorf("repository status update = %v, want confirmed", repo.updatedStatus)
	}

	select {
	case event := <-notifier.events:
		if event.Type != "booking_confirmed" || event.BookingID != 1 {
			t.Errorf("notification = %+v, want booking_confirmed for booking 1", event)
		}
	case <-time.After(time.Second):
		t.Error("confirmation notification was not sent")
	}
}

func TestConfirm_InvalidTransition(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusPaid,
		domain.StatusNoShow,
		domain.StatusCancelled,
	} {
		booking := holdBooking()
		booking.Status = status
		svc := NewService(&stubBookingRepo{booking: booking}, newStubNotifier(), fakeTxManager{}, nopLogger{})

		_, err := svc.Confirm(context.Background(), 1)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("confirm from %s: got %v, want ErrInvalidTransition", status, err)
		}
	}
}

func TestConfirm_NotFound(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, newStubNotifier(), fakeTxManager{}, nopLogger{})

	_, err := svc.Confirm(context.Background(), 99)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

func TestCancel_FromHoldAndConfirmed(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusHold, domain.StatusConfirmed} {
		booking := holdBooking()
		booking.Status = status
		repo := &stubBookingRepo{booking: booking}
		svc := NewService(repo, newStubNotifier(), fakeTxManager{}, nopLogger{})

		resp, err := svc.Cancel(context.Background(), 1, "client request")
		if err != nil {
			t.Fatalf("cancel from %s: unexpected error: %v", status, err)
		}
		if resp.Status != string(domain.StatusCancelled) {
			t.Errorf("cancel from %s: Status = %s, want cancelled", status, resp.Status)
		}
		if repo.cancelReason == nil || *repo.cancelReason != "client request" {
			t.Errorf("cancel from %s: reason = %v, want \"client request\"", status, repo.cancelReason)
		}
	}
}

func TestCancel_SettledIsImmutable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPaid, domain.StatusNoShow, domain.StatusCancelled} {
		booking := holdBooking()
		booking.Status = status
		svc := NewService(&stubBookingRepo{booking: booking}, newStubNotifier(), fakeTxManager{}, nopLogger{})

		_, err := svc.Cancel(context.Background(), 1, "")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("cancel from %s: got %v, want ErrInvalidTransition", status, err)
		}
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := NewService(&stubBookingRepo{booking: holdBooking()}, newStubNotifier(), fakeTxManager{}, nopLogger{})

	reason := strings.Repeat("a", domain.MaxCancellationReasonLength+1)
	_, err := svc.Cancel(context.Background(), 1, reason)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&stubBookingRepo{}, newStubNotifier(), fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}
