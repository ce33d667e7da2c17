package open_shift

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/shifts"
)

type ShiftService interface {
	Open(ctx context.Context, req *shifts.OpenRequest) (*domain.Shift, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
