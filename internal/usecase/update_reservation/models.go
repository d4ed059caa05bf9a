package update_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на изменение бронирования
// Незаданные (nil) поля остаются без изменений
type Request struct {
	ID        int64            // ID бронирования
	SpaceID   *int64           // Новое пространство
	EventDate *time.Time       // Новая дата мероприятия
	TotalDue  *decimal.Decimal // Новая стоимость
	Notes     *string          // Новые заметки
}

// changes набор проверенных изменений
type changes struct {
	spaceID   *int64
	eventDate *domain.EventDate
	totalDue  *domain.Money
	notes     *string
}
