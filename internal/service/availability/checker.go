package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Checker проверяет, что пространство свободно на дату
//
// Проверка и последующая запись бронирования - два отдельных шага. Вызывающий код
// обязан выполнять их в одной сериализуемой транзакции; дополнительно схема БД
// содержит частичный уникальный индекс по (space_id, event_date) для активных статусов.
type Checker struct {
	repo   ReservationRepository
	logger Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(repo ReservationRepository, logger Logger) *Checker {
	return &Checker{
		repo:   repo,
		logger: logger,
	}
}

// Validate возвращает ErrSpaceUnavailable, если другое активное бронирование занимает
// пространство на эту дату. excludeID позволяет перепроверить редактируемое бронирование,
// не считая конфликтом его собственную запись.
func (c *Checker) Validate(ctx context.Context, spaceID int64, date time.Time, excludeID *int64) error {
	reservations, err := c.repo.ListBySpaceAndDate(ctx, spaceID, date)
	if err != nil {
		c.logger.Error("Availability: failed to list reservations for space=%d, date=%s: %v",
			spaceID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	if conflict := FindConflict(reservations, spaceID, date, excludeID); conflict != nil {
		c.logger.Warn("Availability: space=%d is taken on %s by reservation id=%d (status=%s)",
			spaceID, date.Format(domain.DateFormat), conflict.ID, conflict.Status)
		return fmt.Errorf("%w: space=%d, date=%s", ErrSpaceUnavailable, spaceID, date.Format(domain.DateFormat))
	}

	return nil
}

// FindConflict returns the first reservation other than excludeID that holds the space on
// the date in a non-terminal status, or nil.
func FindConflict(reservations []*domain.Reservation, spaceID int64, date time.Time, excludeID *int64) *domain.Reservation {
	for _, r := range reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.SpaceID != spaceID || !r.EventDate.SameDay(date) {
			continue
		}
		if !r.IsActive() {
			continue
		}
		return r
	}
	return nil
}
