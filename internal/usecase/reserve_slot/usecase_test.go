package reserve_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingstore "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubBookingRepo struct {
	createErr error
	created   *domain.Booking
}

func (s *stubBookingRepo) CreateHold(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	b := *booking
	b.ID = 42
	b.CreatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	s.created = &b
	return &b, nil
}

type stubCatalog struct {
	service *catalogservice.Service
	err     error
}

func (s *stubCatalog) GetService(ctx context.Context, branchID, serviceID int64) (*catalogservice.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.service, nil
}

type stubSchedule struct {
	schedule *scheduleservice.StaffDaySchedule
	err      error
}

func (s *stubSchedule) GetStaffSchedule(ctx context.Context, staffID int64, date time.Time) (*scheduleservice.StaffDaySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.schedule, nil
}

var testNow = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		BusinessID:      1,
		BranchID:        2,
		ServiceID:       3,
		StaffID:         4,
		ClientID:        5,
		StartAt:         time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
}

func workingDay() *scheduleservice.StaffDaySchedule {
	return &scheduleservice.StaffDaySchedule{
		StaffID:   4,
		Date:      "2026-08-01",
		IsWorking: true,
		StartAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
	}
}

func haircut() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              3,
		BranchID:        2,
		Name:            "Haircut",
		Price:           1500,
		DurationMinutes: 60,
	}
}

func newTestUseCase(repo *stubBookingRepo, catalog *stubCatalog, schedule *stubSchedule) *UseCase {
	uc := NewUseCase(repo, catalog, schedule, 30*time.Minute, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_CreatesHold(t *testing.T) {
	repo := &stubBookingRepo{}
	uc := newTestUseCase(repo, &stubCatalog{service: haircut()}, &stubSchedule{schedule: workingDay()})

	resp, err := uc.Execute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != 42 {
		t.Errorf("ID = %d, want 42", resp.ID)
	}
	if resp.Status != string(domain.StatusHold) {
		t.Errorf("Status = %s, want hold", resp.Status)
	}
	if resp.ServiceName != "Haircut" || resp.ServicePrice != 1500 {
		t.Errorf("denormalized service = %s/%.2f, want Haircut/1500.00", resp.ServiceName, resp.ServicePrice)
	}
	wantEnd := time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)
	if !resp.EndAt.Equal(wantEnd) {
		t.Errorf("EndAt = %v, want %v", resp.EndAt, wantEnd)
	}
	wantExpires := resp.CreatedAt.Add(30 * time.Minute)
	if !resp.ExpiresAt.Equal(wantExpires) {
		t.Errorf("ExpiresAt = %v, want %v", resp.ExpiresAt, wantExpires)
	}
}

func TestExecute_Validation(t *testing.T) {
	mutations := map[string]func(*Request){
		"zero business":      func(r *Request) { r.BusinessID = 0 },
		"zero branch":        func(r *Request) { r.BranchID = 0 },
		"zero service":       func(r *Request) { r.ServiceID = 0 },
		"zero staff":         func(r *Request) { r.StaffID = 0 },
		"zero client":        func(r *Request) { r.ClientID = 0 },
		"zero start":         func(r *Request) { r.StartAt = time.Time{} },
		"duration too short": func(r *Request) { r.DurationMinutes = 4 },
		"duration too long":  func(r *Request) { r.DurationMinutes = 481 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{service: haircut()}, &stubSchedule{schedule: workingDay()})
			req := validRequest()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestExecute_StartInPast(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{service: haircut()}, &stubSchedule{schedule: workingDay()})

	req := validRequest()
	req.StartAt = testNow.Add(-time.Minute)
	_, err := uc.Execute(context.Background(), req)
	if !errors.Is(err, ErrStartInPast) {
		t.Errorf("got %v, want ErrStartInPast", err)
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{err: catalogservice.ErrServiceNotFound}, &stubSchedule{schedule: workingDay()})

	_, err := uc.Execute(context.Background(), validRequest())
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("got %v, want ErrServiceNotFound", err)
	}
}

func TestExecute_StaffNotFound(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{service: haircut()}, &stubSchedule{err: scheduleservice.ErrStaffNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	if !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("got %v, want ErrStaffNotFound", err)
	}
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{service: haircut()}, &stubSchedule{schedule: workingDay()})

	// Смена до 18:00, слот 17:30-18:30 выходит за её пределы
	req := validRequest()
	req.StartAt = time.Date(2026, 8, 1, 17, 30, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	if !errors.Is(err, ErrStaffNotWorking) {
		t.Errorf("got %v, want ErrStaffNotWorking", err)
	}
}

func TestExecute_DayOff(t *testing.T) {
	dayOff := workingDay()
	dayOff.IsWorking = false
	uc := newTestUseCase(&stubBookingRepo{}, &stubCatalog{service: haircut()}, &stubSchedule{schedule: dayOff})

	_, err := uc.Execute(context.Background(), validRequest())
	if !errors.Is(err, ErrStaffNotWorking) {
		t.Errorf("got %v, want ErrStaffNotWorking", err)
	}
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &stubBookingRepo{createErr: bookingstore.ErrSlotConflict}
	uc := newTestUseCase(repo, &stubCatalog{service: haircut()}, &stubSchedule{schedule: workingDay()})

	_, err := uc.Execute(context.Background(), validRequest())
	if !errors.Is(err, ErrSlotConflict) {
		t.Errorf("got %v, want ErrSlotConflict", err)
	}
}
