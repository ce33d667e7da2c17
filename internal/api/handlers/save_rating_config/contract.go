package save_rating_config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/ratings"
)

type RatingService interface {
	SaveConfig(ctx context.Context, req *ratings.SaveConfigRequest) (*ratings.SaveConfigResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
