package register_payment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// buildPayment валидирует запрос и собирает платёж-кандидат
// Допустимость вида платежа проверяется позже, по истории платежей бронирования
func buildPayment(req *Request) (*domain.Payment, error) {
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation ID must be positive", ErrInvalidInput)
	}

	amount, err := domain.NewMoney(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %w", ErrInvalidInput, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	method, err := domain.ParsePaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	ref := strings.TrimSpace(req.TransactionRef)
	if ref == "" {
		ref = uuid.NewString()
	}
	if utf8.RuneCountInString(ref) > domain.MaxTransactionRefLength {
		return nil, fmt.Errorf("%w: transactionRef must be at most %d characters", ErrInvalidInput, domain.MaxTransactionRefLength)
	}

	return &domain.Payment{
		ReservationID:  req.ReservationID,
		Amount:         amount,
		Kind:           domain.PaymentKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		Method:         method,
		TransactionRef: ref,
	}, nil
}
