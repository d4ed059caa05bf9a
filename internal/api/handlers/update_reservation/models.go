package update_reservation

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
// Отсутствующие поля не изменяются
type UpdateReservationRequest struct {
	SpaceID   *int64           `json:"spaceId,omitempty"`
	EventDate *string          `json:"eventDate,omitempty"`
	TotalDue  *decimal.Decimal `json:"totalDue,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(id int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ID:       id,
		SpaceID:  r.SpaceID,
		TotalDue: r.TotalDue,
		Notes:    r.Notes,
	}

	if r.EventDate != nil {
		date, err := domain.ParseDate(*r.EventDate)
		if err != nil {
			return nil, err
		}
		req.EventDate = &date
	}

	return req, nil
}
