package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	reserveSlot "github.com/m04kA/SMC-SalonService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotConflict       = "интервал пересекается с существующей записью мастера"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotWorking    = "мастер не работает в выбранное время"
	msgStartInPast        = "время начала уже прошло"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Клиент берется из контекста аутентификации, не из тела запроса
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: staff_id=%d, client_id=%d", req.StaffID, clientID)
			handlers.RespondConflict(w, handlers.CodeConflict, msgSlotConflict)

		case errors.Is(err, reserveSlot.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d, branch_id=%d", req.ServiceID, req.BranchID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reserveSlot.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, reserveSlot.ErrStaffNotWorking):
			h.logger.Warn("POST /bookings - Staff not working: staff_id=%d, start=%s", req.StaffID, req.StartAt)
			handlers.RespondConflict(w, handlers.CodeConflict, msgStaffNotWorking)

		case errors.Is(err, reserveSlot.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: client_id=%d, start=%s", clientID, req.StartAt)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: client_id=%d, staff_id=%d, error=%v",
				clientID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Hold created: booking_id=%d, client_id=%d, staff_id=%d",
		result.ID, clientID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
