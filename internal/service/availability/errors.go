package availability

import "errors"

var (
	// ErrSpaceUnavailable возвращается, когда на дату уже есть активное бронирование пространства
	ErrSpaceUnavailable = errors.New("availability: space is unavailable on this date")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)
