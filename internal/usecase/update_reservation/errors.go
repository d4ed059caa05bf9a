package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrReservationClosed возвращается при попытке изменить отменённое или завершённое бронирование
	ErrReservationClosed = errors.New("update_reservation: reservation is closed")

	// ErrTotalLocked возвращается при изменении стоимости после первого платежа
	ErrTotalLocked = errors.New("update_reservation: total cannot change once payments exist")

	// ErrSpaceNotFound возвращается, когда новое пространство не найдено в каталоге
	ErrSpaceNotFound = errors.New("update_reservation: space not found")

	// ErrSpaceInactive возвращается, когда новое пространство выведено из каталога
	ErrSpaceInactive = errors.New("update_reservation: space is not active")

	// ErrSpaceUnavailable возвращается, когда пространство уже занято на эту дату
	ErrSpaceUnavailable = errors.New("update_reservation: space is unavailable on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
