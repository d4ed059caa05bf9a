package register_payment

import (
	"errors"

	"github.com/shopspring/decimal"

	registerPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/register_payment"
)

var errMissingAmount = errors.New("amount is required")

// RegisterPaymentRequest HTTP request model
type RegisterPaymentRequest struct {
	Amount         decimal.NullDecimal `json:"amount"`
	Kind           string              `json:"kind"`   // FULL, DEPOSIT, SETTLEMENT
	Method         string              `json:"method"` // PIX, CREDIT_CARD, DEBIT_CARD, CASH, BANK_TRANSFER
	TransactionRef string              `json:"transactionRef,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RegisterPaymentRequest) ToUseCaseRequest(reservationID int64) (*registerPayment.Request, error) {
	if !r.Amount.Valid {
		return nil, errMissingAmount
	}

	return &registerPayment.Request{
		ReservationID:  reservationID,
		Amount:         r.Amount.Decimal,
		Kind:           r.Kind,
		Method:         r.Method,
		TransactionRef: r.TransactionRef,
	}, nil
}
