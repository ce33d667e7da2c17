package clientservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("clientservice: client not found")

	// ErrUnavailable возвращается при недоступности клиентского сервиса
	ErrUnavailable = errors.New("clientservice: service unavailable")
)
