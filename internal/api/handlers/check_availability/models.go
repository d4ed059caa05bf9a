package check_availability

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var errMissingDate = errors.New("date is required")

// AvailabilityResponse ответ проверки доступности пространства на дату
type AvailabilityResponse struct {
	SpaceID   int64  `json:"spaceId"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// query разобранные query параметры
type query struct {
	date      time.Time
	excludeID *int64
}

// parseQuery разбирает date и excludeReservationId
func parseQuery(dateStr, excludeStr string) (*query, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	q := &query{date: date}
	if excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		q.excludeID = &excludeID
	}

	return q, nil
}
