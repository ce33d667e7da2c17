package open_shift

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

// OpenShiftRequest HTTP request model
type OpenShiftRequest struct {
	StaffID       int64    `json:"staffId"`
	BranchID      int64    `json:"branchId"`
	Date          string   `json:"date"` // "2026-08-29"
	PercentMaster float64  `json:"percentMaster"`
	PercentSalon  float64  `json:"percentSalon"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
}

// ShiftResponse HTTP response model
type ShiftResponse struct {
	ID       int64  `json:"id"`
	StaffID  int64  `json:"staffId"`
	BranchID int64  `json:"branchId"`
	Date     string `json:"date"`
	Status   string `json:"status"`

	PercentMaster float64  `json:"percentMaster"`
	PercentSalon  float64  `json:"percentSalon"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`

	OpenedAt string `json:"openedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *OpenShiftRequest) ToServiceRequest() (*shifts.OpenRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &shifts.OpenRequest{
		StaffID:       r.StaffID,
		BranchID:      r.BranchID,
		Date:          date,
		PercentMaster: r.PercentMaster,
		PercentSalon:  r.PercentSalon,
		HourlyRate:    r.HourlyRate,
	}, nil
}

// FromDomainShift конвертирует domain модель в HTTP response
func FromDomainShift(shift *domain.Shift) *ShiftResponse {
	return &ShiftResponse{
		ID:            shift.ID,
		StaffID:       shift.StaffID,
		BranchID:      shift.BranchID,
		Date:          shift.Date.Format(domain.DateFormat),
		Status:        string(shift.Status),
		PercentMaster: shift.PercentMaster,
		PercentSalon:  shift.PercentSalon,
		HourlyRate:    shift.HourlyRate,
		OpenedAt:      shift.OpenedAt.Format(time.RFC3339),
	}
}
