package evaluate_promotion

import "github.com/m04kA/SMC-SalonService/internal/domain"

// EvaluationResponse HTTP response model.
// Eligible false и пустая Promotion означают, что ни одна акция не подходит.
type EvaluationResponse struct {
	Eligible  bool               `json:"eligible"`
	Promotion *PromotionResponse `json:"promotion,omitempty"`
}

// PromotionResponse подобранная акция в HTTP ответе
type PromotionResponse struct {
	Type            string  `json:"type"`
	OriginalAmount  float64 `json:"originalAmount"`
	FinalAmount     float64 `json:"finalAmount"`
	DiscountPercent float64 `json:"discountPercent"`
}

// FromDomain конвертирует результат подбора акции в HTTP response
func FromDomain(promo *domain.PromotionApplied) *EvaluationResponse {
	if promo == nil {
		return &EvaluationResponse{Eligible: false}
	}

	return &EvaluationResponse{
		Eligible: true,
		Promotion: &PromotionResponse{
			Type:            string(promo.Type),
			OriginalAmount:  promo.OriginalAmount,
			FinalAmount:     promo.FinalAmount,
			DiscountPercent: promo.DiscountPercent,
		},
	}
}
