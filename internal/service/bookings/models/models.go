package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// PromotionAppliedResponse результат применения акции в ответе API
type PromotionAppliedResponse struct {
	Type            string  `json:"type"`
	OriginalAmount  float64 `json:"originalAmount"`
	FinalAmount     float64 `json:"finalAmount"`
	DiscountPercent float64 `json:"discountPercent"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	BusinessID int64 `json:"businessId"`
	BranchID   int64 `json:"branchId"`
	ServiceID  int64 `json:"serviceId"`
	StaffID    int64 `json:"staffId"`
	ClientID   int64 `json:"clientId"`

	StartAt string `json:"startAt"` // ISO 8601
	EndAt   string `json:"endAt"`   // ISO 8601
	Status  string `json:"status"`

	ServiceName  string `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	PromotionApplied *PromotionAppliedResponse `json:"promotionApplied,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		BranchID:           b.BranchID,
		ServiceID:          b.ServiceID,
		StaffID:            b.StaffID,
		ClientID:           b.ClientID,
		StartAt:            b.StartAt.Format(time.RFC3339),
		EndAt:              b.EndAt.Format(time.RFC3339),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.PromotionApplied != nil {
		resp.PromotionApplied = &PromotionAppliedResponse{
			Type:            string(b.PromotionApplied.Type),
			OriginalAmount:  b.PromotionApplied.OriginalAmount,
			FinalAmount:     b.PromotionApplied.FinalAmount,
			DiscountPercent: b.PromotionApplied.DiscountPercent,
		}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
