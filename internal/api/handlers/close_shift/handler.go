package close_shift

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

const (
	msgInvalidShiftID      = "некорректный ID смены"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "смена не найдена"
	msgAlreadyClosed       = "смена уже закрыта"
	msgInvalidPercentSplit = "percentMaster и percentSalon должны в сумме давать 100"
	msgInvalidItems        = "некорректные позиции смены"
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

// Handle POST /api/v1/shifts/{shiftId}/close
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shifts/{id}/close - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	// Тело опционально: закрытие без финальных позиций допустимо
	var req CloseShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /shifts/{id}/close - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Close(r.Context(), shiftID, req.ToServiceInputs())
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftNotFound):
			h.logger.Warn("POST /shifts/{id}/close - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, shifts.ErrShiftClosed):
			h.logger.Warn("POST /shifts/{id}/close - Shift already closed: shift_id=%d", shiftID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgAlreadyClosed)

		case errors.Is(err, shifts.ErrSettlementInvariant):
			h.logger.Warn("POST /shifts/{id}/close - Settlement invariant violated: shift_id=%d", shiftID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeSettlementInvariant, msgInvalidPercentSplit)

		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts/{id}/close - Invalid items: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondBadRequest(w, msgInvalidItems)

		default:
			h.logger.Error("POST /shifts/{id}/close - Failed to close shift: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts/{id}/close - Shift closed: shift_id=%d, master_share=%.2f, salon_share=%.2f",
		result.ShiftID, result.MasterShare, result.SalonShare)
	handlers.RespondJSON(w, http.StatusOK, FromCloseResult(result))
}
