package spaceservice

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено в каталоге
	ErrSpaceNotFound = errors.New("space not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("spaceservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("spaceservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Каталог недоступен, проверка существования пространства пропускается
	ErrServiceDegraded = errors.New("spaceservice unavailable: graceful degradation applied")
)
