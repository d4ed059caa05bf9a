package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetSpaceReservationsRequest запрос на получение бронирований пространства
type GetSpaceReservationsRequest struct {
	SpaceID         int64      `json:"spaceId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSpaceReservationsRequest) ToDomainFilter() (domain.SpaceReservationsFilter, error) {
	filter := domain.SpaceReservationsFilter{
		SpaceID:         r.SpaceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PaymentResponse платёж в составе бронирования
type PaymentResponse struct {
	ID             int64     `json:"id"`
	Amount         string    `json:"amount"`
	Kind           string    `json:"kind"`
	Method         string    `json:"method"`
	TransactionRef string    `json:"transactionRef"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReservationResponse ответ с данными бронирования, платежами и остатком к оплате
type ReservationResponse struct {
	ID                 int64             `json:"id"`
	SpaceID            int64             `json:"spaceId"`
	CustomerID         int64             `json:"customerId"`
	EventDate          string            `json:"eventDate"`          // "2025-10-15"
	EventDateFormatted string            `json:"eventDateFormatted"` // "15/10/2025"
	TotalDue           string            `json:"totalDue"`
	TotalDueFormatted  string            `json:"totalDueFormatted"`
	TotalPaid          string            `json:"totalPaid"`
	Balance            string            `json:"balance"`
	Status             string            `json:"status"`
	Notes              *string           `json:"notes,omitempty"`
	Payments           []PaymentResponse `json:"payments"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует доменную модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	// Переплата невозможна после проверки платежей, но остаток не должен уходить в минус
	balance, err := r.Balance()
	if err != nil {
		balance = domain.ZeroMoney()
	}

	payments := make([]PaymentResponse, 0, len(r.Payments))
	for _, p := range r.Payments {
		payments = append(payments, PaymentResponse{
			ID:             p.ID,
			Amount:         p.Amount.String(),
			Kind:           string(p.Kind),
			Method:         string(p.Method),
			TransactionRef: p.TransactionRef,
			CreatedAt:      p.CreatedAt,
		})
	}

	return &ReservationResponse{
		ID:                 r.ID,
		SpaceID:            r.SpaceID,
		CustomerID:         r.CustomerID,
		EventDate:          r.EventDate.String(),
		EventDateFormatted: r.EventDate.Format(),
		TotalDue:           r.TotalDue.String(),
		TotalDueFormatted:  r.TotalDue.Format(),
		TotalPaid:          r.TotalPaid().String(),
		Balance:            balance.String(),
		Status:             string(r.Status),
		Notes:              r.Notes,
		Payments:           payments,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, *FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}
