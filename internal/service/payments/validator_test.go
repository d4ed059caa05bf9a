package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func reservationWithTotal(total string, history ...*domain.Payment) *domain.Reservation {
	r := domain.NewReservation(1, 2, domain.RestoreEventDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), domain.MustMoney(total), nil)
	r.ID = 100
	for _, p := range history {
		r.AddPayment(p)
	}
	return r
}

func payment(kind domain.PaymentKind, amount string) *domain.Payment {
	return &domain.Payment{
		Amount: domain.MustMoney(amount),
		Kind:   kind,
		Method: domain.PaymentMethodPix,
	}
}

func TestValidate_Deposit(t *testing.T) {
	fresh := reservationWithTotal("300.00")

	assert.NoError(t, Validate(payment(domain.PaymentKindDeposit, "150.00"), fresh))
	assert.ErrorIs(t, Validate(payment(domain.PaymentKindDeposit, "100.00"), fresh), ErrAmountMismatch)

	withDeposit := reservationWithTotal("300.00", payment(domain.PaymentKindDeposit, "150.00"))
	assert.ErrorIs(t, Validate(payment(domain.PaymentKindDeposit, "150.00"), withDeposit), ErrNotFirstPayment)
}

func TestValidate_Full(t *testing.T) {
	fresh := reservationWithTotal("300.00")

	assert.NoError(t, Validate(payment(domain.PaymentKindFull, "300"), fresh))
	assert.ErrorIs(t, Validate(payment(domain.PaymentKindFull, "150.00"), fresh), ErrAmountMismatch)

	withDeposit := reservationWithTotal("300.00", payment(domain.PaymentKindDeposit, "150.00"))
	assert.ErrorIs(t, Validate(payment(domain.PaymentKindFull, "300.00"), withDeposit), ErrNotFirstPayment)
}

func TestValidate_Settlement(t *testing.T) {
	tests := []struct {
		name    string
		history []*domain.Payment
		amount  string
		wantErr error
	}{
		{
			name:    "no prior payments",
			amount:  "150.00",
			wantErr: ErrNoPriorDeposit,
		},
		{
			name:    "prior full payment",
			history: []*domain.Payment{payment(domain.PaymentKindFull, "300.00")},
			amount:  "150.00",
			wantErr: ErrInvalidPriorSequence,
		},
		{
			name: "already settled",
			history: []*domain.Payment{
				payment(domain.PaymentKindDeposit, "150.00"),
				payment(domain.PaymentKindSettlement, "150.00"),
			},
			amount:  "0.00",
			wantErr: ErrAlreadySettled,
		},
		{
			name:    "short of remaining balance",
			history: []*domain.Payment{payment(domain.PaymentKindDeposit, "150.00")},
			amount:  "149.00",
			wantErr: ErrAmountMismatch,
		},
		{
			name:    "exact remaining balance",
			history: []*domain.Payment{payment(domain.PaymentKindDeposit, "150.00")},
			amount:  "150.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reservationWithTotal("300.00", tt.history...)
			err := Validate(payment(domain.PaymentKindSettlement, tt.amount), r)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	err := Validate(payment("REFUND", "10.00"), reservationWithTotal("300.00"))
	assert.ErrorIs(t, err, ErrInvalidPaymentKind)
}

func TestValidate_OddTotalDepositRoundsHalfUp(t *testing.T) {
	r := reservationWithTotal("100.01")
	assert.NoError(t, Validate(payment(domain.PaymentKindDeposit, "50.01"), r))

	r.AddPayment(payment(domain.PaymentKindDeposit, "50.01"))
	assert.NoError(t, Validate(payment(domain.PaymentKindSettlement, "50.00"), r))
}

func TestPaymentPipeline_EndToEnd(t *testing.T) {
	classifier := NewClassifier()
	r := reservationWithTotal("200.00")
	require.Equal(t, domain.StatusAwaitingDeposit, r.Status)

	deposit := payment(domain.PaymentKindDeposit, "100.00")
	require.NoError(t, Validate(deposit, r))
	r.AddPayment(deposit)
	status, err := classifier.ClassifyAndTransition(r, deposit)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, status)

	settlement := payment(domain.PaymentKindSettlement, "100.00")
	require.NoError(t, Validate(settlement, r))
	r.AddPayment(settlement)
	status, err = classifier.ClassifyAndTransition(r, settlement)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSettled, status)

	balance, err := r.Balance()
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, r.TransitionTo(domain.StatusCompleted))
	for _, target := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusSettled, domain.StatusCancelled, domain.StatusAwaitingDeposit} {
		assert.ErrorIs(t, r.TransitionTo(target), domain.ErrTerminalState)
	}
}
