package scheduleservice

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в сервисе расписаний
	ErrStaffNotFound = errors.New("scheduleservice: staff not found")

	// ErrUnavailable возвращается при недоступности сервиса расписаний
	ErrUnavailable = errors.New("scheduleservice: service unavailable")
)
