package domain

import "time"

// ShiftStatus represents the status of a staff shift
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

// Shift is a staff member's single-day work session tracked for revenue splitting.
// At most one open shift per (staff, date); enforced by a unique constraint.
type Shift struct {
	ID       int64
	StaffID  int64
	BranchID int64
	Date     time.Time
	Status   ShiftStatus

	TotalAmount       float64
	ConsumablesAmount float64

	PercentMaster float64
	PercentSalon  float64

	MasterShare float64
	SalonShare  float64

	// Guaranteed minimum pay: when HourlyRate is set and hours worked times the
	// rate exceeds the percentage share, the difference is paid as a top-up.
	HourlyRate       *float64
	HoursWorked      float64
	GuaranteedAmount float64
	TopupAmount      float64

	OpenedAt  time.Time
	ClosedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosed returns true if the shift has been closed.
// Closing is irreversible; items of a closed shift are immutable.
func (s *Shift) IsClosed() bool {
	return s.Status == ShiftClosed
}

// HasGuaranteedPay returns true if the shift uses the guaranteed-minimum-pay mechanism
func (s *Shift) HasGuaranteedPay() bool {
	return s.HourlyRate != nil && *s.HourlyRate > 0
}

// ShiftItem is a single serviced visit recorded on a shift
type ShiftItem struct {
	ID                int64
	ShiftID           int64
	ClientName        string
	ServiceName       string
	ServiceAmount     float64
	ConsumablesAmount float64
	CreatedAt         time.Time
}
