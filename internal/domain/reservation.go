package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusAwaitingDeposit ReservationStatus = "AWAITING_DEPOSIT"
	StatusConfirmed       ReservationStatus = "CONFIRMED"
	StatusSettled         ReservationStatus = "SETTLED"
	StatusCancelled       ReservationStatus = "CANCELLED"
	StatusCompleted       ReservationStatus = "COMPLETED"
)

// AllowedTransitions is the reservation state machine: source status -> legal targets.
// Terminal statuses map to an empty list.
var AllowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusAwaitingDeposit: {StatusConfirmed, StatusSettled, StatusCancelled},
	StatusConfirmed:       {StatusSettled, StatusCancelled, StatusCompleted},
	StatusSettled:         {StatusCompleted},
	StatusCancelled:       {},
	StatusCompleted:       {},
}

// ParseReservationStatus converts a string into a known ReservationStatus
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if _, ok := AllowedTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive returns true if the status occupies the space on its date
func (s ReservationStatus) IsActive() bool {
	return !s.IsTerminal()
}

// CanTransition checks the table only; same-status requests are handled by TransitionTo
func CanTransition(from, to ReservationStatus) bool {
	for _, target := range AllowedTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Reservation is the aggregate root owning its payments
type Reservation struct {
	ID         int64
	SpaceID    int64 // ID бронируемого пространства (внешний агрегат)
	CustomerID int64 // ID клиента (внешний агрегат)
	EventDate  EventDate
	TotalDue   Money
	Notes      *string
	Status     ReservationStatus
	Payments   []*Payment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReservation creates a reservation in the initial AWAITING_DEPOSIT status
func NewReservation(spaceID, customerID int64, eventDate EventDate, totalDue Money, notes *string) *Reservation {
	return &Reservation{
		SpaceID:    spaceID,
		CustomerID: customerID,
		EventDate:  eventDate,
		TotalDue:   totalDue,
		Notes:      notes,
		Status:     StatusAwaitingDeposit,
		Payments:   []*Payment{},
	}
}

// TotalPaid sums the amounts of all recorded payments
func (r *Reservation) TotalPaid() Money {
	total := ZeroMoney()
	for _, p := range r.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance returns TotalDue - TotalPaid; it fails with ErrNegativeResult on overpayment
func (r *Reservation) Balance() (Money, error) {
	return r.TotalDue.Subtract(r.TotalPaid())
}

// HasPayments returns true if at least one payment is recorded
func (r *Reservation) HasPayments() bool {
	return len(r.Payments) > 0
}

// FirstPayment returns the earliest recorded payment or nil
func (r *Reservation) FirstPayment() *Payment {
	if len(r.Payments) == 0 {
		return nil
	}
	return r.Payments[0]
}

// AddPayment appends an accepted payment to the aggregate
func (r *Reservation) AddPayment(p *Payment) {
	p.ReservationID = r.ID
	r.Payments = append(r.Payments, p)
}

// IsActive returns true if the reservation still occupies its space
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// TransitionTo moves the reservation along the transition table.
// Requesting the current status is a no-op.
func (r *Reservation) TransitionTo(target ReservationStatus) error {
	if r.Status == target {
		return nil
	}
	if r.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalState, r.Status)
	}
	if !CanTransition(r.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.Status, target)
	}

	r.Status = target
	return nil
}

// Cancel wipes the payment history and forces CANCELLED.
// It bypasses the transition table, terminal statuses included.
func (r *Reservation) Cancel() {
	r.Payments = []*Payment{}
	r.Status = StatusCancelled
}

// SpaceReservationsFilter фильтр для получения бронирований пространства
type SpaceReservationsFilter struct {
	SpaceID         int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и завершённые бронирования
}
