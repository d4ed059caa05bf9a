package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestClassifier_BuiltInStrategies(t *testing.T) {
	c := NewClassifier()

	tests := map[domain.PaymentKind]domain.ReservationStatus{
		domain.PaymentKindFull:       domain.StatusSettled,
		domain.PaymentKindDeposit:    domain.StatusConfirmed,
		domain.PaymentKindSettlement: domain.StatusSettled,
	}

	for kind, want := range tests {
		got, err := c.Classify(payment(kind, "1.00"))
		require.NoError(t, err, kind)
		assert.Equal(t, want, got, kind)
	}
}

func TestClassifier_NoMatchingStrategy(t *testing.T) {
	_, err := NewClassifier().Classify(payment("VOUCHER", "1.00"))
	assert.ErrorIs(t, err, ErrNoMatchingStrategy)
	assert.Contains(t, err.Error(), "VOUCHER")
}

func TestClassifier_ExtraStrategyConsultedAfterBuiltIns(t *testing.T) {
	c := NewClassifier(
		TransitionStrategy{
			Name:       "voucher",
			Matches:    func(p *domain.Payment) bool { return p.Kind == "VOUCHER" },
			NextStatus: func(*domain.Payment) domain.ReservationStatus { return domain.StatusConfirmed },
		},
		TransitionStrategy{
			Name:       "shadow deposit",
			Matches:    func(p *domain.Payment) bool { return p.Kind == domain.PaymentKindDeposit },
			NextStatus: func(*domain.Payment) domain.ReservationStatus { return domain.StatusCompleted },
		},
	)

	got, err := c.Classify(payment("VOUCHER", "1.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got)

	got, err = c.Classify(payment(domain.PaymentKindDeposit, "1.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got)
}

func TestClassifyAndTransition_RejectsIllegalTransition(t *testing.T) {
	r := reservationWithTotal("300.00")
	r.Status = domain.StatusSettled

	_, err := NewClassifier().ClassifyAndTransition(r, payment(domain.PaymentKindDeposit, "150.00"))
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, domain.StatusSettled, r.Status)
}
