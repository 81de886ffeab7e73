package get_available_slots

import (
	"fmt"

	"github.com/ign-garage/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Days < 0 {
		return fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}
	if req.Days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: days must be at most %d", ErrInvalidInput, domain.MaxAvailabilityRangeDays)
	}
	return nil
}
