package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount возвращается, когда сумма не распознана или отрицательна
	ErrInvalidAmount = errors.New("domain: invalid amount")

	// ErrNegativeResult возвращается, когда вычитание дало бы отрицательную сумму
	ErrNegativeResult = errors.New("domain: negative result")

	// ErrInvalidEventDate семейство ошибок даты мероприятия, причина в EventDateError
	ErrInvalidEventDate = errors.New("domain: invalid event date")

	// ErrIllegalTransition возвращается, когда переход отсутствует в таблице переходов
	ErrIllegalTransition = errors.New("domain: illegal status transition")

	// ErrTerminalState возвращается при попытке перехода из конечного статуса
	ErrTerminalState = errors.New("domain: reservation is in a terminal state")

	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("domain: invalid reservation status")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("domain: invalid payment method")
)

// EventDateReason distinguishes the members of the ErrInvalidEventDate family
type EventDateReason string

const (
	EventDateNull    EventDateReason = "null"
	EventDatePast    EventDateReason = "past"
	EventDateTooSoon EventDateReason = "too_soon"
	EventDateTooFar  EventDateReason = "too_far"
)

// EventDateError is returned by NewEventDate; errors.Is(err, ErrInvalidEventDate) holds for it
type EventDateError struct {
	Reason EventDateReason
}

func (e *EventDateError) Error() string {
	switch e.Reason {
	case EventDateNull:
		return fmt.Sprintf("%v: date is required", ErrInvalidEventDate)
	case EventDatePast:
		return fmt.Sprintf("%v: date is in the past", ErrInvalidEventDate)
	case EventDateTooSoon:
		return fmt.Sprintf("%v: date must be at least %d day(s) ahead", ErrInvalidEventDate, MinLeadDays)
	case EventDateTooFar:
		return fmt.Sprintf("%v: date must be at most %d days ahead", ErrInvalidEventDate, MaxLeadDays)
	default:
		return fmt.Sprintf("%v: %s", ErrInvalidEventDate, e.Reason)
	}
}

func (e *EventDateError) Unwrap() error {
	return ErrInvalidEventDate
}

// EventDateReasonOf extracts the reason from an error chain, if present
func EventDateReasonOf(err error) (EventDateReason, bool) {
	var dateErr *EventDateError
	if errors.As(err, &dateErr) {
		return dateErr.Reason, true
	}
	return "", false
}
