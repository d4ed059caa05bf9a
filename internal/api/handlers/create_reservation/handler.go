package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные параметры бронирования"
	msgInvalidEventDate   = "некорректная дата мероприятия"
	msgInvalidAmount      = "некорректная сумма"
	msgSpaceNotFound      = "пространство не найдено"
	msgSpaceInactive      = "пространство недоступно для бронирования"
	msgSpaceUnavailable   = "пространство уже занято на выбранную дату"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEventDate):
			reason, _ := domain.EventDateReasonOf(err)
			h.logger.Warn("POST /reservations - Invalid event date: space_id=%d, reason=%s", req.SpaceID, reason)
			handlers.RespondErrorWithReason(w, http.StatusBadRequest, msgInvalidEventDate, string(reason))

		case errors.Is(err, domain.ErrInvalidAmount):
			h.logger.Warn("POST /reservations - Invalid amount: space_id=%d, error=%v", req.SpaceID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, createReservation.ErrSpaceNotFound):
			h.logger.Warn("POST /reservations - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createReservation.ErrSpaceInactive):
			h.logger.Warn("POST /reservations - Space inactive: space_id=%d", req.SpaceID)
			handlers.RespondBadRequest(w, msgSpaceInactive)

		case errors.Is(err, createReservation.ErrSpaceUnavailable):
			h.logger.Warn("POST /reservations - Space unavailable: space_id=%d, date=%s", req.SpaceID, req.EventDate)
			handlers.RespondConflict(w, msgSpaceUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: space_id=%d, customer_id=%d, error=%v",
				req.SpaceID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, space_id=%d",
		result.ID, result.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
