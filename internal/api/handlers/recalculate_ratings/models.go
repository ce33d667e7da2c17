package recalculate_ratings

import "github.com/m04kA/SMC-SalonService/internal/service/ratings"

// RecalculateRequest HTTP request model
type RecalculateRequest struct {
	DaysBack int `json:"daysBack"`
}

// EntityErrorResponse ошибка пересчета одной сущности
type EntityErrorResponse struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	Message    string `json:"message"`
}

// RecalculateResponse HTTP response model.
// Батч считается успешным и при частичных ошибках: они возвращаются списком.
type RecalculateResponse struct {
	EntitiesProcessed int                   `json:"entitiesProcessed"`
	Errors            []EntityErrorResponse `json:"errors"`
}

// FromBatchResult конвертирует итог батча в HTTP response
func FromBatchResult(result *ratings.BatchResult) *RecalculateResponse {
	resp := &RecalculateResponse{
		EntitiesProcessed: result.EntitiesProcessed,
		Errors:            make([]EntityErrorResponse, 0, len(result.Errors)),
	}

	for _, entityErr := range result.Errors {
		resp.Errors = append(resp.Errors, EntityErrorResponse{
			EntityType: string(entityErr.Entity.Type),
			EntityID:   entityErr.Entity.ID,
			Message:    entityErr.Message,
		})
	}

	return resp
}
