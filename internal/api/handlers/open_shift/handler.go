package open_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAlreadyOpen         = "смена мастера на эту дату уже открыта"
	msgInvalidPercentSplit = "percentMaster и percentSalon должны в сумме давать 100"
	msgInvalidInput        = "некорректные параметры смены"
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

// Handle POST /api/v1/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OpenShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /shifts - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	shift, err := h.service.Open(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftAlreadyOpen):
			h.logger.Warn("POST /shifts - Shift already open: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, handlers.CodeConflict, msgAlreadyOpen)

		case errors.Is(err, shifts.ErrSettlementInvariant):
			h.logger.Warn("POST /shifts - Invalid percent split: staff_id=%d, master=%.2f, salon=%.2f",
				req.StaffID, req.PercentMaster, req.PercentSalon)
			handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeSettlementInvariant, msgInvalidPercentSplit)

		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /shifts - Failed to open shift: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts - Shift opened: shift_id=%d, staff_id=%d", shift.ID, shift.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainShift(shift))
}
