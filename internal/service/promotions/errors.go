package promotions

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование для dry-run не найдено
	ErrBookingNotFound = errors.New("promotions: booking not found")

	// ErrEvaluationFailed возвращается, когда проверить применимость акций не удалось
	// (недоступен клиентский сервис, ошибка чтения счетчиков и т.п.).
	// Ошибка не фатальна для отметки посещения: переход статуса выполняется без акции.
	ErrEvaluationFailed = errors.New("promotions: evaluation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions: internal error")
)
