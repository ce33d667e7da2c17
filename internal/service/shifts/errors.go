package shifts

import "errors"

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("shifts: shift not found")

	// ErrShiftAlreadyOpen возвращается при попытке открыть вторую смену
	// для того же мастера на ту же дату
	ErrShiftAlreadyOpen = errors.New("shifts: shift already open for this staff and date")

	// ErrShiftClosed возвращается при попытке изменить закрытую смену.
	// Закрытие необратимо, позиции закрытой смены неизменяемы.
	ErrShiftClosed = errors.New("shifts: shift is closed")

	// ErrSettlementInvariant возвращается, когда percent_master + percent_salon != 100.
	// Запись отклоняется, смена остается в прежнем консистентном состоянии.
	ErrSettlementInvariant = errors.New("shifts: percent_master and percent_salon must sum to 100")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("shifts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shifts: internal error")
)
