package mark_attendance

import (
	"context"

	markAttendance "github.com/m04kA/SMC-SalonService/internal/usecase/mark_attendance"
)

type MarkAttendanceUseCase interface {
	Execute(ctx context.Context, req *markAttendance.Request) (*markAttendance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
