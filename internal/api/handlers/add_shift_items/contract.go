package add_shift_items

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

type ShiftService interface {
	AddItems(ctx context.Context, shiftID int64, inputs []shifts.ItemInput) (*domain.Shift, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
