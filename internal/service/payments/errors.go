package payments

import "errors"

var (
	// ErrNotFirstPayment возвращается, когда FULL или DEPOSIT приходит не первым платежом
	ErrNotFirstPayment = errors.New("payments: payment must be the first one for the reservation")

	// ErrAmountMismatch возвращается, когда сумма платежа не совпадает с ожидаемой
	ErrAmountMismatch = errors.New("payments: amount mismatch")

	// ErrNoPriorDeposit возвращается, когда SETTLEMENT приходит без предыдущего платежа
	ErrNoPriorDeposit = errors.New("payments: settlement requires a prior deposit")

	// ErrInvalidPriorSequence возвращается, когда первый платёж не является DEPOSIT
	ErrInvalidPriorSequence = errors.New("payments: settlement must follow a deposit")

	// ErrAlreadySettled возвращается, когда бронирование уже полностью оплачено
	ErrAlreadySettled = errors.New("payments: reservation is already settled")

	// ErrInvalidPaymentKind возвращается при неизвестном виде платежа
	ErrInvalidPaymentKind = errors.New("payments: invalid payment kind")

	// ErrNoMatchingStrategy возвращается, когда ни одна стратегия не подходит к платежу
	ErrNoMatchingStrategy = errors.New("payments: no transition strategy matches payment kind")
)
