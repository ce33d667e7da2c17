package mark_attendance

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("mark_attendance: booking not found")

	// ErrInvalidTransition возвращается, когда статус бронирования не допускает
	// отметку посещения (hold, cancelled или противоположный терминальный статус)
	ErrInvalidTransition = errors.New("mark_attendance: invalid status transition")

	// ErrBookingNotStarted возвращается, когда бронирование еще не началось
	ErrBookingNotStarted = errors.New("mark_attendance: booking has not started yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_attendance: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_attendance: internal error")

	// errPromotionFailed внутренняя ошибка для отката транзакции при сбое движка акций.
	// Наружу не отдается: переход статуса повторяется без акции, а сбой
	// попадает в ответ отдельным полем.
	errPromotionFailed = errors.New("mark_attendance: promotion application failed")
)
