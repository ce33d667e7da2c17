package save_rating_config

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/ratings"
)

// SaveConfigRequest HTTP request model
type SaveConfigRequest struct {
	ReviewsWeight      int  `json:"reviewsWeight"`
	ProductivityWeight int  `json:"productivityWeight"`
	LoyaltyWeight      int  `json:"loyaltyWeight"`
	DisciplineWeight   int  `json:"disciplineWeight"`
	WindowDays         int  `json:"windowDays"`
	RecalcDaysBack     *int `json:"recalcDaysBack,omitempty"`
}

// EntityErrorResponse ошибка пересчета одной сущности
type EntityErrorResponse struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	Message    string `json:"message"`
}

// RecalcSummaryResponse итоги пересчета истории после смены конфигурации
type RecalcSummaryResponse struct {
	EntitiesProcessed int                   `json:"entitiesProcessed"`
	Errors            []EntityErrorResponse `json:"errors"`
}

// SaveConfigResponse HTTP response model
type SaveConfigResponse struct {
	ID                 int64  `json:"id"`
	ReviewsWeight      int    `json:"reviewsWeight"`
	ProductivityWeight int    `json:"productivityWeight"`
	LoyaltyWeight      int    `json:"loyaltyWeight"`
	DisciplineWeight   int    `json:"disciplineWeight"`
	WindowDays         int    `json:"windowDays"`
	ValidFrom          string `json:"validFrom"`

	RecalcTriggered bool                   `json:"recalcTriggered"`
	RecalcSummary   *RecalcSummaryResponse `json:"recalcSummary,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SaveConfigRequest) ToServiceRequest() *ratings.SaveConfigRequest {
	return &ratings.SaveConfigRequest{
		ReviewsWeight:      r.ReviewsWeight,
		ProductivityWeight: r.ProductivityWeight,
		LoyaltyWeight:      r.LoyaltyWeight,
		DisciplineWeight:   r.DisciplineWeight,
		WindowDays:         r.WindowDays,
		RecalcDaysBack:     r.RecalcDaysBack,
	}
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *ratings.SaveConfigResult) *SaveConfigResponse {
	resp := &SaveConfigResponse{
		ID:                 result.Config.ID,
		ReviewsWeight:      result.Config.ReviewsWeight,
		ProductivityWeight: result.Config.ProductivityWeight,
		LoyaltyWeight:      result.Config.LoyaltyWeight,
		DisciplineWeight:   result.Config.DisciplineWeight,
		WindowDays:         result.Config.WindowDays,
		ValidFrom:          result.Config.ValidFrom.Format(time.RFC3339),
		RecalcTriggered:    result.RecalcTriggered,
	}

	if result.RecalcSummary != nil {
		summary := &RecalcSummaryResponse{
			EntitiesProcessed: result.RecalcSummary.EntitiesProcessed,
			Errors:            make([]EntityErrorResponse, 0, len(result.RecalcSummary.Errors)),
		}
		for _, entityErr := range result.RecalcSummary.Errors {
			summary.Errors = append(summary.Errors, EntityErrorResponse{
				EntityType: string(entityErr.Entity.Type),
				EntityID:   entityErr.Entity.ID,
				Message:    entityErr.Message,
			})
		}
		resp.RecalcSummary = summary
	}

	return resp
}
