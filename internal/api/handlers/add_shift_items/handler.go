package add_shift_items

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

const (
	msgInvalidShiftID     = "некорректный ID смены"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "смена не найдена"
	msgShiftClosed        = "смена закрыта, позиции неизменяемы"
	msgInvalidItems       = "некорректные позиции смены"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shifts/{shiftId}/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shifts/{id}/items - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	var req AddItemsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts/{id}/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	shift, err := h.service.AddItems(r.Context(), shiftID, req.ToServiceInputs())
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftNotFound):
			h.logger.Warn("POST /shifts/{id}/items - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, shifts.ErrShiftClosed):
			h.logger.Warn("POST /shifts/{id}/items - Shift closed: shift_id=%d", shiftID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgShiftClosed)

		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts/{id}/items - Invalid items: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondBadRequest(w, msgInvalidItems)

		default:
			h.logger.Error("POST /shifts/{id}/items - Failed to add items: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts/{id}/items - Items added: shift_id=%d, count=%d", shiftID, len(req.Items))
	handlers.RespondJSON(w, http.StatusOK, FromDomainShift(shift))
}
