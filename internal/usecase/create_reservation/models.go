package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	SpaceID    int64           // ID пространства
	CustomerID int64           // ID клиента
	EventDate  time.Time       // Дата мероприятия (время отбрасывается)
	TotalDue   decimal.Decimal // Полная стоимость
	Notes      *string         // Дополнительные заметки (опционально)
}
