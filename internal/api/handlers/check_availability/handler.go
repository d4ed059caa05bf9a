package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
)

const (
	msgInvalidSpaceID = "некорректный ID пространства"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/availability
// Query params: date (обязательно), excludeReservationId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid space ID: %q", mux.Vars(r)["spaceId"])
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	q, err := parseQuery(r.URL.Query().Get("date"), r.URL.Query().Get("excludeReservationId"))
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	resp := AvailabilityResponse{
		SpaceID:   spaceID,
		Date:      q.date.Format(domain.DateFormat),
		Available: true,
	}

	if err := h.checker.Validate(r.Context(), spaceID, q.date, q.excludeID); err != nil {
		if !errors.Is(err, availability.ErrSpaceUnavailable) {
			h.logger.Error("GET /spaces/{id}/availability - Failed to check availability: space_id=%d, error=%v",
				spaceID, err)
			handlers.RespondInternalError(w)
			return
		}
		resp.Available = false
	}

	h.logger.Info("GET /spaces/{id}/availability - space_id=%d, date=%s, available=%t", spaceID, resp.Date, resp.Available)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
