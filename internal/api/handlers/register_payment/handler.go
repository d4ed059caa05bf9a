package register_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/payments"
	registerPayment "github.com/m04kA/SMC-ReservationService/internal/usecase/register_payment"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidFields        = "некорректные параметры платежа"
	msgInvalidAmount        = "некорректная сумма"
	msgInvalidMethod        = "неизвестный способ оплаты"
	msgNotFound             = "бронирование не найдено"
	msgTerminalState        = "бронирование уже закрыто"
	msgIllegalTransition    = "платёж недопустим в текущем статусе бронирования"
)

// paymentRejections сообщения для отказов проверки допустимости платежа
var paymentRejections = []struct {
	err  error
	code string
	msg  string
}{
	{payments.ErrNotFirstPayment, "not_first_payment", "платёж FULL или DEPOSIT должен быть первым"},
	{payments.ErrAmountMismatch, "amount_mismatch", "сумма платежа не совпадает с ожидаемой"},
	{payments.ErrNoPriorDeposit, "no_prior_deposit", "доплата невозможна без предоплаты"},
	{payments.ErrInvalidPriorSequence, "invalid_prior_sequence", "доплата возможна только после предоплаты"},
	{payments.ErrAlreadySettled, "already_settled", "бронирование уже полностью оплачено"},
	{payments.ErrInvalidPaymentKind, "invalid_payment_kind", "неизвестный вид платежа"},
	{payments.ErrNoMatchingStrategy, "no_matching_strategy", "вид платежа не меняет статус бронирования"},
}

type Handler struct {
	useCase RegisterPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RegisterPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payments - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RegisterPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, reservationID, &req, err)
		return
	}

	h.logger.Info("POST /reservations/{id}/payments - Payment registered: reservation_id=%d, payment_id=%d, %s -> %s",
		reservationID, result.Payment.ID, result.PreviousStatus, result.Reservation.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, reservationID int64, req *RegisterPaymentRequest, err error) {
	for _, rejection := range paymentRejections {
		if errors.Is(err, rejection.err) {
			h.logger.Warn("POST /reservations/{id}/payments - Payment rejected: reservation_id=%d, kind=%s, reason=%s, error=%v",
				reservationID, req.Kind, rejection.code, err)
			handlers.RespondErrorWithReason(w, http.StatusUnprocessableEntity, rejection.msg, rejection.code)
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		h.logger.Warn("POST /reservations/{id}/payments - Invalid method: reservation_id=%d, method=%q", reservationID, req.Method)
		handlers.RespondBadRequest(w, msgInvalidMethod)

	case errors.Is(err, domain.ErrInvalidAmount):
		h.logger.Warn("POST /reservations/{id}/payments - Invalid amount: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidAmount)

	case errors.Is(err, registerPayment.ErrInvalidInput):
		h.logger.Warn("POST /reservations/{id}/payments - Invalid input: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidFields)

	case errors.Is(err, registerPayment.ErrReservationNotFound):
		h.logger.Warn("POST /reservations/{id}/payments - Reservation not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrTerminalState):
		h.logger.Warn("POST /reservations/{id}/payments - Terminal state: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondConflict(w, msgTerminalState)

	case errors.Is(err, domain.ErrIllegalTransition):
		h.logger.Warn("POST /reservations/{id}/payments - Illegal transition: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondConflict(w, msgIllegalTransition)

	default:
		h.logger.Error("POST /reservations/{id}/payments - Failed to register payment: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
	}
}
