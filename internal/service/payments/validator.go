package payments

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Validate checks a candidate payment against the reservation's recorded payments.
// It must run before the payment is persisted; reservation.Payments has to be loaded.
func Validate(payment *domain.Payment, reservation *domain.Reservation) error {
	total := reservation.TotalDue
	hasHistory := reservation.HasPayments()

	switch payment.Kind {
	case domain.PaymentKindFull:
		if hasHistory {
			return fmt.Errorf("%w: kind=%s, existing payments=%d", ErrNotFirstPayment, payment.Kind, len(reservation.Payments))
		}
		return expectAmount(payment, total)

	case domain.PaymentKindDeposit:
		if hasHistory {
			return fmt.Errorf("%w: kind=%s, existing payments=%d", ErrNotFirstPayment, payment.Kind, len(reservation.Payments))
		}
		return expectAmount(payment, total.Halve())

	case domain.PaymentKindSettlement:
		if !hasHistory {
			return ErrNoPriorDeposit
		}
		if first := reservation.FirstPayment(); first.Kind != domain.PaymentKindDeposit {
			return fmt.Errorf("%w: first payment kind=%s", ErrInvalidPriorSequence, first.Kind)
		}
		if len(reservation.Payments) > 1 {
			return fmt.Errorf("%w: existing payments=%d", ErrAlreadySettled, len(reservation.Payments))
		}

		remaining, err := reservation.Balance()
		if err != nil {
			return err
		}
		return expectAmount(payment, remaining)

	default:
		return fmt.Errorf("%w: %q", ErrInvalidPaymentKind, payment.Kind)
	}
}

func expectAmount(payment *domain.Payment, expected domain.Money) error {
	if !payment.Amount.IsEqualTo(expected) {
		return fmt.Errorf("%w: kind=%s expected=%s got=%s",
			ErrAmountMismatch, payment.Kind, expected.String(), payment.Amount.String())
	}
	return nil
}
