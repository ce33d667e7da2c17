package save_rating_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/ratings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeights     = "веса метрик должны в сумме давать 100"
	msgInvalidWindow      = "windowDays должен быть в диапазоне от 1 до 365"
	msgInvalidDaysBack    = "recalcDaysBack должен быть в диапазоне от 1 до 365"
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

// Handle PUT /api/v1/ratings/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SaveConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /ratings/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SaveConfig(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidWeights):
			h.logger.Warn("PUT /ratings/config - Invalid weights: reviews=%d, productivity=%d, loyalty=%d, discipline=%d",
				req.ReviewsWeight, req.ProductivityWeight, req.LoyaltyWeight, req.DisciplineWeight)
			handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeValidationError, msgInvalidWeights)

		case errors.Is(err, ratings.ErrInvalidWindow):
			h.logger.Warn("PUT /ratings/config - Invalid window: window_days=%d", req.WindowDays)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, ratings.ErrInvalidDaysBack):
			h.logger.Warn("PUT /ratings/config - Invalid days back: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDaysBack)

		default:
			h.logger.Error("PUT /ratings/config - Failed to save config: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /ratings/config - Config saved: config_id=%d, recalc_triggered=%t",
		result.Config.ID, result.RecalcTriggered)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
