package update_reservation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует запрос и переводит значения в доменные типы
func validateRequest(req *Request, now time.Time) (*changes, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: reservation ID must be positive", ErrInvalidInput)
	}

	if req.SpaceID == nil && req.EventDate == nil && req.TotalDue == nil && req.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	c := &changes{notes: req.Notes}

	if req.SpaceID != nil {
		if *req.SpaceID <= 0 {
			return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
		}
		c.spaceID = req.SpaceID
	}

	if req.EventDate != nil {
		date, err := domain.NewEventDate(*req.EventDate, now)
		if err != nil {
			return nil, err
		}
		c.eventDate = &date
	}

	if req.TotalDue != nil {
		total, err := domain.NewMoney(*req.TotalDue)
		if err != nil {
			return nil, fmt.Errorf("%w: totalDue: %w", ErrInvalidInput, err)
		}
		if !total.IsPositive() {
			return nil, fmt.Errorf("%w: totalDue must be positive", ErrInvalidInput)
		}
		c.totalDue = &total
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return c, nil
}

// apply применяет изменения к бронированию и сообщает, нужна ли повторная проверка доступности
func (c *changes) apply(r *domain.Reservation) (moved bool, err error) {
	if c.totalDue != nil && !c.totalDue.IsEqualTo(r.TotalDue) {
		if r.HasPayments() {
			return false, fmt.Errorf("%w: paid=%s", ErrTotalLocked, r.TotalPaid().String())
		}
		r.TotalDue = *c.totalDue
	}

	if c.spaceID != nil && *c.spaceID != r.SpaceID {
		r.SpaceID = *c.spaceID
		moved = true
	}

	if c.eventDate != nil && !c.eventDate.Equal(r.EventDate) {
		r.EventDate = *c.eventDate
		moved = true
	}

	if c.notes != nil {
		r.Notes = c.notes
	}

	return moved, nil
}
