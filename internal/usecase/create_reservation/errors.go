package create_reservation

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено в каталоге
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrSpaceInactive возвращается, когда пространство выведено из каталога
	ErrSpaceInactive = errors.New("create_reservation: space is not active")

	// ErrSpaceUnavailable возвращается, когда пространство уже занято на эту дату
	ErrSpaceUnavailable = errors.New("create_reservation: space is unavailable on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
