package close_shift

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

type ShiftService interface {
	Close(ctx context.Context, shiftID int64, inputs []shifts.ItemInput) (*shifts.CloseResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
