package payments

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TransitionStrategy pairs a payment predicate with the status it leads to
type TransitionStrategy struct {
	Name       string
	Matches    func(payment *domain.Payment) bool
	NextStatus func(payment *domain.Payment) domain.ReservationStatus
}

func kindStrategy(kind domain.PaymentKind, next domain.ReservationStatus) TransitionStrategy {
	return TransitionStrategy{
		Name:       string(kind),
		Matches:    func(p *domain.Payment) bool { return p.Kind == kind },
		NextStatus: func(*domain.Payment) domain.ReservationStatus { return next },
	}
}

// DefaultStrategies returns the built-in strategies in evaluation order
func DefaultStrategies() []TransitionStrategy {
	return []TransitionStrategy{
		kindStrategy(domain.PaymentKindFull, domain.StatusSettled),
		kindStrategy(domain.PaymentKindDeposit, domain.StatusConfirmed),
		kindStrategy(domain.PaymentKindSettlement, domain.StatusSettled),
	}
}

// Classifier selects the next reservation status for an accepted payment
type Classifier struct {
	strategies []TransitionStrategy
}

// NewClassifier создает классификатор со встроенными стратегиями
// Дополнительные стратегии проверяются после встроенных
func NewClassifier(extra ...TransitionStrategy) *Classifier {
	strategies := DefaultStrategies()
	strategies = append(strategies, extra...)
	return &Classifier{strategies: strategies}
}

// Classify returns the status produced by the first matching strategy
func (c *Classifier) Classify(payment *domain.Payment) (domain.ReservationStatus, error) {
	for _, s := range c.strategies {
		if s.Matches(payment) {
			return s.NextStatus(payment), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoMatchingStrategy, payment.Kind)
}

// ClassifyAndTransition classifies the payment and applies the resulting status to the
// reservation through the transition table. The reservation is left untouched on error.
func (c *Classifier) ClassifyAndTransition(reservation *domain.Reservation, payment *domain.Payment) (domain.ReservationStatus, error) {
	next, err := c.Classify(payment)
	if err != nil {
		return "", err
	}

	if err := reservation.TransitionTo(next); err != nil {
		return "", err
	}

	return next, nil
}
