package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidFields        = "некорректные параметры бронирования"
	msgInvalidEventDate     = "некорректная дата мероприятия"
	msgInvalidAmount        = "некорректная сумма"
	msgNotFound             = "бронирование не найдено"
	msgReservationClosed    = "бронирование отменено или завершено и не может быть изменено"
	msgTotalLocked          = "стоимость нельзя изменить после первого платежа"
	msgSpaceNotFound        = "пространство не найдено"
	msgSpaceInactive        = "пространство недоступно для бронирования"
	msgSpaceUnavailable     = "пространство уже занято на выбранную дату"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEventDate):
			reason, _ := domain.EventDateReasonOf(err)
			h.logger.Warn("PUT /reservations/{id} - Invalid event date: reservation_id=%d, reason=%s", reservationID, reason)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgInvalidEventDate, string(reason))

		case errors.Is(err, domain.ErrInvalidAmount):
			h.logger.Warn("PUT /reservations/{id} - Invalid amount: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrSpaceNotFound):
			h.logger.Warn("PUT /reservations/{id} - Space not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, updateReservation.ErrSpaceInactive):
			h.logger.Warn("PUT /reservations/{id} - Space inactive: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgSpaceInactive)

		case errors.Is(err, updateReservation.ErrReservationClosed):
			h.logger.Warn("PUT /reservations/{id} - Reservation closed: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgReservationClosed)

		case errors.Is(err, updateReservation.ErrTotalLocked):
			h.logger.Warn("PUT /reservations/{id} - Total locked: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgTotalLocked)

		case errors.Is(err, updateReservation.ErrSpaceUnavailable):
			h.logger.Warn("PUT /reservations/{id} - Space unavailable: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgSpaceUnavailable)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
