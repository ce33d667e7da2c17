package recalculate_ratings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/ratings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDaysBack    = "daysBack должен быть в диапазоне от 1 до 365"
	msgConfigNotFound     = "активная конфигурация рейтинга не найдена"
)

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/ratings/recalculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RecalculateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ratings/recalculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecalculateAll(r.Context(), req.DaysBack)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidDaysBack):
			h.logger.Warn("POST /ratings/recalculate - Invalid days back: days_back=%d", req.DaysBack)
			handlers.RespondBadRequest(w, msgInvalidDaysBack)

		case errors.Is(err, ratings.ErrConfigNotFound):
			h.logger.Warn("POST /ratings/recalculate - Active config not found")
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("POST /ratings/recalculate - Failed to recalculate: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /ratings/recalculate - Batch finished: processed=%d, failed=%d",
		result.EntitiesProcessed, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromBatchResult(result))
}
