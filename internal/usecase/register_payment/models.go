package register_payment

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Результаты обработки платежа для метрик
const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)

// Request модель запроса на регистрацию платежа
type Request struct {
	ReservationID  int64           // ID бронирования
	Amount         decimal.Decimal // Сумма платежа
	Kind           string          // FULL, DEPOSIT или SETTLEMENT
	Method         string          // Способ оплаты
	TransactionRef string          // Внешний ID транзакции (генерируется, если пуст)
}

// Response модель ответа: принятый платёж и бронирование после перехода
type Response struct {
	Payment        models.PaymentResponse      `json:"payment"`
	PreviousStatus string                      `json:"previousStatus"`
	Reservation    *models.ReservationResponse `json:"reservation"`
}
