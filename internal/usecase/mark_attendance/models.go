package mark_attendance

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на отметку посещения
type Request struct {
	BookingID int64 // ID бронирования
	Attended  bool  // true - клиент пришел (paid), false - не пришел (no_show)
}

// PromotionResult примененная акция в ответе
type PromotionResult struct {
	Type            string  // Тип акции
	OriginalAmount  float64 // Цена до скидки
	FinalAmount     float64 // Цена после скидки
	DiscountPercent float64 // Процент скидки
}

// Response модель ответа отметки посещения
type Response struct {
	BookingID int64     // ID бронирования
	Status    string    // Итоговый статус (paid | no_show)
	SettledAt time.Time // Время фиксации

	// PromotionApplied заполнено, если при переходе в paid применена акция
	PromotionApplied *PromotionResult

	// PromotionError заполнено, если движок акций отработал с ошибкой:
	// переход статуса выполнен без акции, причина сбоя отдается клиенту
	PromotionError *string
}

// promotionResultFromDomain конвертирует доменную модель в ответ
func promotionResultFromDomain(promo *domain.PromotionApplied) *PromotionResult {
	if promo == nil {
		return nil
	}
	return &PromotionResult{
		Type:            string(promo.Type),
		OriginalAmount:  promo.OriginalAmount,
		FinalAmount:     promo.FinalAmount,
		DiscountPercent: promo.DiscountPercent,
	}
}
