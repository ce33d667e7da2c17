package mark_attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	markAttendance "github.com/m04kA/SMC-SalonService/internal/usecase/mark_attendance"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "отметка посещения недопустима из текущего статуса"
	msgNotStarted         = "бронирование еще не началось"
)

type Handler struct {
	useCase MarkAttendanceUseCase
	logger  Logger
}

func NewHandler(useCase MarkAttendanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req MarkAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markAttendance.Request{
		BookingID: bookingID,
		Attended:  req.Attended,
	})
	if err != nil {
		switch {
		case errors.Is(err, markAttendance.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markAttendance.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		case errors.Is(err, markAttendance.ErrBookingNotStarted):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Booking not started: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeConflict, msgNotStarted)

		case errors.Is(err, markAttendance.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/attendance - Failed to mark attendance: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/attendance - Attendance marked: booking_id=%d, status=%s",
		result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
