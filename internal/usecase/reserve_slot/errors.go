package reserve_slot

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге филиала
	ErrServiceNotFound = errors.New("reserve_slot: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в сервисе расписаний
	ErrStaffNotFound = errors.New("reserve_slot: staff not found")

	// ErrStaffNotWorking возвращается, когда интервал не покрыт рабочим расписанием мастера
	ErrStaffNotWorking = errors.New("reserve_slot: staff is not working at this time")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием мастера
	ErrSlotConflict = errors.New("reserve_slot: slot conflicts with an existing booking")

	// ErrStartInPast возвращается, когда время начала уже прошло
	ErrStartInPast = errors.New("reserve_slot: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
