package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// parseTotalDue переводит стоимость в Money; нулевая стоимость не допускается
func parseTotalDue(amount decimal.Decimal) (domain.Money, error) {
	total, err := domain.NewMoney(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: totalDue: %w", ErrInvalidInput, err)
	}

	if !total.IsPositive() {
		return domain.Money{}, fmt.Errorf("%w: totalDue must be positive", ErrInvalidInput)
	}

	return total, nil
}
