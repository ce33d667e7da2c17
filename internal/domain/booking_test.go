package domain

import (
	"testing"
	"time"
)

func TestBooking_StatusPredicates(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		status       BookingStatus
		startAt      time.Time
		isActive     bool
		isSettled    bool
		canConfirm   bool
		canCancel    bool
		canAttend    bool
	}{
		{
			name:       "hold",
			status:     StatusHold,
			startAt:    now.Add(time.Hour),
			isActive:   true,
			canConfirm: true,
			canCancel:  true,
		},
		{
			name:      "confirmed not started",
			status:    StatusConfirmed,
			startAt:   now.Add(time.Hour),
			isActive:  true,
			canCancel: true,
		},
		{
			name:      "confirmed started",
			status:    StatusConfirmed,
			startAt:   now.Add(-time.Hour),
			isActive:  true,
			canCancel: true,
			canAttend: true,
		},
		{
			name:      "paid",
			status:    StatusPaid,
			startAt:   now.Add(-time.Hour),
			isActive:  true,
			isSettled: true,
		},
		{
			name:      "no_show",
			status:    StatusNoShow,
			startAt:   now.Add(-time.Hour),
			isActive:  true,
			isSettled: true,
		},
		{
			name:    "cancelled",
			status:  StatusCancelled,
			startAt: now.Add(-time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, StartAt: tt.startAt}

			if got := b.IsActive(); got != tt.isActive {
				t.Errorf("IsActive() = %t, want %t", got, tt.isActive)
			}
			if got := b.IsSettled(); got != tt.isSettled {
				t.Errorf("IsSettled() = %t, want %t", got, tt.isSettled)
			}
			if got := b.CanBeConfirmed(); got != tt.canConfirm {
				t.Errorf("CanBeConfirmed() = %t, want %t", got, tt.canConfirm)
			}
			if got := b.CanBeCancelled(); got != tt.canCancel {
				t.Errorf("CanBeCancelled() = %t, want %t", got, tt.canCancel)
			}
			if got := b.CanMarkAttendance(now); got != tt.canAttend {
				t.Errorf("CanMarkAttendance() = %t, want %t", got, tt.canAttend)
			}
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		StartAt: base,
		EndAt:   base.Add(time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", base, base.Add(time.Hour), true},
		{"contained", base.Add(15 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"touching end is free", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"touching start is free", base.Add(-time.Hour), base, false},
		{"disjoint after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %t, want %t", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
