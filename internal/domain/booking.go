package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusHold provisional slot reservation, not yet guaranteed
	StatusHold BookingStatus = "hold"
	// StatusConfirmed committed booking, slot is guaranteed
	StatusConfirmed BookingStatus = "confirmed"
	// StatusPaid terminal: client attended, visit settled
	StatusPaid BookingStatus = "paid"
	// StatusNoShow terminal: client did not attend
	StatusNoShow BookingStatus = "no_show"
	// StatusCancelled terminal: reservation released
	StatusCancelled BookingStatus = "cancelled"
)

// PromotionApplied is the outcome of a promotion applied to a completed visit
type PromotionApplied struct {
	Type            PromotionType
	OriginalAmount  float64
	FinalAmount     float64
	DiscountPercent float64
}

// Booking represents a slot reservation for a staff member.
// At most one non-cancelled booking may occupy a (staff, time interval) pair;
// this is enforced by a storage-level exclusion constraint, not by the application.
type Booking struct {
	ID         int64
	BusinessID int64
	BranchID   int64
	ServiceID  int64
	StaffID    int64
	ClientID   int64

	StartAt time.Time
	EndAt   time.Time
	Status  BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	PromotionApplied *PromotionApplied

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsSettled returns true if attendance has already been recorded
func (b *Booking) IsSettled() bool {
	return b.Status == StatusPaid || b.Status == StatusNoShow
}

// CanBeConfirmed returns true if the booking can move from hold to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusHold
}

// CanBeCancelled returns true if the booking can still be cancelled.
// Settled bookings are immutable.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusHold || b.Status == StatusConfirmed
}

// CanMarkAttendance returns true if attendance can be recorded now.
// Requires a confirmed booking whose start time is already in the past.
func (b *Booking) CanMarkAttendance(now time.Time) bool {
	return b.Status == StatusConfirmed && b.StartAt.Before(now)
}

// HasStarted returns true if the booking start time is in the past
func (b *Booking) HasStarted(now time.Time) bool {
	return b.StartAt.Before(now)
}

// Overlaps returns true if the booking time range intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}
