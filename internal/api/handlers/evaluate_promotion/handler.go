package evaluate_promotion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/promotions"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgEvaluationFailed = "не удалось проверить применимость акций"
)

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/promotion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/promotion - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	promo, err := h.service.EvaluateForBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, promotions.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/promotion - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, promotions.ErrEvaluationFailed):
			h.logger.Warn("GET /bookings/{id}/promotion - Evaluation failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, handlers.CodeInternalError, msgEvaluationFailed)

		default:
			h.logger.Error("GET /bookings/{id}/promotion - Failed to evaluate: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/promotion - Evaluated: booking_id=%d, eligible=%t", bookingID, promo != nil)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(promo))
}
