package get_space_reservations

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

var errDateWithRange = errors.New("date cannot be combined with startDate or endDate")

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день; startDate/endDate задают период, каждая граница опциональна.
func ToServiceRequest(spaceID int64, q url.Values) (*models.GetSpaceReservationsRequest, error) {
	req := &models.GetSpaceReservationsRequest{
		SpaceID:         spaceID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		status = strings.ToUpper(status)
		req.Status = &status
	}

	if dateStr := q.Get("date"); dateStr != "" {
		if q.Get("startDate") != "" || q.Get("endDate") != "" {
			return nil, errDateWithRange
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if startStr := q.Get("startDate"); startStr != "" {
		start, err := domain.ParseDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		req.StartDate = &start
	}

	if endStr := q.Get("endDate"); endStr != "" {
		end, err := domain.ParseDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		req.EndDate = &end
	}

	if includeInactiveStr := q.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
