package domain

import (
	"fmt"
	"time"
)

// PaymentKind classifies a payment within the reservation's settlement sequence
type PaymentKind string

const (
	PaymentKindFull       PaymentKind = "FULL"       // single payment of the whole total
	PaymentKindDeposit    PaymentKind = "DEPOSIT"    // first half of the total
	PaymentKindSettlement PaymentKind = "SETTLEMENT" // remaining balance after a deposit
)

// PaymentMethod is the tender used for a payment
type PaymentMethod string

const (
	PaymentMethodPix          PaymentMethod = "PIX"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodPix:          {},
	PaymentMethodCreditCard:   {},
	PaymentMethodDebitCard:    {},
	PaymentMethodCash:         {},
	PaymentMethodBankTransfer: {},
}

// ParsePaymentMethod converts a string into a known PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if _, ok := paymentMethods[method]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
	return method, nil
}

// Payment represents money received for a reservation.
// ReservationID is a lookup-only reference; payments never mutate their reservation.
type Payment struct {
	ID             int64
	ReservationID  int64
	Amount         Money
	Kind           PaymentKind
	Method         PaymentMethod
	TransactionRef string // внешний идентификатор транзакции
	CreatedAt      time.Time
}
