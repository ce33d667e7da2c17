package ratings

import "errors"

var (
	// ErrInvalidWeights возвращается, когда веса конфигурации не дают в сумме 100
	ErrInvalidWeights = errors.New("ratings: weights must sum to 100")

	// ErrInvalidWindow возвращается при window_days вне диапазона [1, 365]
	ErrInvalidWindow = errors.New("ratings: window_days must be between 1 and 365")

	// ErrInvalidDaysBack возвращается при days_back вне диапазона [1, 365]
	ErrInvalidDaysBack = errors.New("ratings: days_back must be between 1 and 365")

	// ErrConfigNotFound возвращается, когда активная конфигурация отсутствует
	ErrConfigNotFound = errors.New("ratings: active rating config not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ratings: internal error")
)
