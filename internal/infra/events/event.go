// Package events публикует доменные события бронирований в RabbitMQ
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// RoutingKeyStatusChanged ключ маршрутизации события смены статуса
const RoutingKeyStatusChanged = "reservation.status_changed"

// Причины смены статуса
const (
	ReasonPayment      = "payment"
	ReasonCancellation = "cancellation"
	ReasonManual       = "manual"
)

// StatusChangedEvent публикуется после фиксации смены статуса бронирования.
// Содержит достаточно данных, чтобы потребителям не нужно было обращаться к БД.
type StatusChangedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID int64  `json:"reservation_id"`
	SpaceID       int64  `json:"space_id"`
	CustomerID    int64  `json:"customer_id"`
	EventDate     string `json:"event_date"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
	TotalDue      string `json:"total_due"`
	TotalPaid     string `json:"total_paid"`
	Reason        string `json:"reason"`
	OccurredAt    string `json:"occurred_at"`
}

// NewStatusChangedEvent собирает событие по состоянию бронирования после перехода
func NewStatusChangedEvent(r *domain.Reservation, from domain.ReservationStatus, reason string, now time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		EventID:       uuid.NewString(),
		ReservationID: r.ID,
		SpaceID:       r.SpaceID,
		CustomerID:    r.CustomerID,
		EventDate:     r.EventDate.String(),
		FromStatus:    string(from),
		ToStatus:      string(r.Status),
		TotalDue:      r.TotalDue.String(),
		TotalPaid:     r.TotalPaid().String(),
		Reason:        reason,
		OccurredAt:    now.UTC().Format(time.RFC3339),
	}
}
