package mark_attendance

import (
	"time"

	markAttendance "github.com/m04kA/SMC-SalonService/internal/usecase/mark_attendance"
)

// MarkAttendanceRequest HTTP request model
type MarkAttendanceRequest struct {
	Attended bool `json:"attended"`
}

// PromotionResponse примененная акция в HTTP ответе
type PromotionResponse struct {
	Type            string  `json:"type"`
	OriginalAmount  float64 `json:"originalAmount"`
	FinalAmount     float64 `json:"finalAmount"`
	DiscountPercent float64 `json:"discountPercent"`
}

// AttendanceResponse HTTP response model
type AttendanceResponse struct {
	BookingID        int64              `json:"bookingId"`
	Status           string             `json:"status"`
	SettledAt        string             `json:"settledAt"`
	PromotionApplied *PromotionResponse `json:"promotionApplied,omitempty"`
	PromotionError   *string            `json:"promotionError,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markAttendance.Response) *AttendanceResponse {
	result := &AttendanceResponse{
		BookingID:      resp.BookingID,
		Status:         resp.Status,
		SettledAt:      resp.SettledAt.Format(time.RFC3339),
		PromotionError: resp.PromotionError,
	}

	if resp.PromotionApplied != nil {
		result.PromotionApplied = &PromotionResponse{
			Type:            resp.PromotionApplied.Type,
			OriginalAmount:  resp.PromotionApplied.OriginalAmount,
			FinalAmount:     resp.PromotionApplied.FinalAmount,
			DiscountPercent: resp.PromotionApplied.DiscountPercent,
		}
	}

	return result
}
