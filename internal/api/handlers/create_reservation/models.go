package create_reservation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

var errMissingTotal = errors.New("totalDue is required")

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID    int64               `json:"spaceId"`
	CustomerID int64               `json:"customerId"`
	EventDate  string              `json:"eventDate"` // "2025-10-15" или "15/10/2025"
	TotalDue   decimal.NullDecimal `json:"totalDue"`
	Notes      *string             `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустая дата передаётся дальше нулевой: её отклоняет проверка даты мероприятия
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	req := &createReservation.Request{
		SpaceID:    r.SpaceID,
		CustomerID: r.CustomerID,
		Notes:      r.Notes,
	}

	if r.EventDate != "" {
		date, err := domain.ParseDate(r.EventDate)
		if err != nil {
			return nil, err
		}
		req.EventDate = date
	}

	if !r.TotalDue.Valid {
		return nil, errMissingTotal
	}
	req.TotalDue = r.TotalDue.Decimal

	return req, nil
}
