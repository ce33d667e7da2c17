package reserve_slot

import (
	"time"

	reserveSlot "github.com/m04kA/SMC-SalonService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	BusinessID      int64  `json:"businessId"`
	BranchID        int64  `json:"branchId"`
	ServiceID       int64  `json:"serviceId"`
	StaffID         int64  `json:"staffId"`
	StartAt         string `json:"startAt"` // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	BranchID        int64   `json:"branchId"`
	ServiceID       int64   `json:"serviceId"`
	StaffID         int64   `json:"staffId"`
	ClientID        int64   `json:"clientId"`
	StartAt         string  `json:"startAt"`
	EndAt           string  `json:"endAt"`
	Status          string  `json:"status"`
	ExpiresAt       string  `json:"expiresAt"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(clientID int64) (*reserveSlot.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		BusinessID:      r.BusinessID,
		BranchID:        r.BranchID,
		ServiceID:       r.ServiceID,
		StaffID:         r.StaffID,
		ClientID:        clientID,
		StartAt:         startAt,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *HoldResponse {
	return &HoldResponse{
		ID:           resp.ID,
		BusinessID:   resp.BusinessID,
		BranchID:     resp.BranchID,
		ServiceID:    resp.ServiceID,
		StaffID:      resp.StaffID,
		ClientID:     resp.ClientID,
		StartAt:      resp.StartAt.Format(time.RFC3339),
		EndAt:        resp.EndAt.Format(time.RFC3339),
		Status:       resp.Status,
		ExpiresAt:    resp.ExpiresAt.Format(time.RFC3339),
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
