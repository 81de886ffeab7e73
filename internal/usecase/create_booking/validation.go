package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Customer.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Customer.LastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Customer.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Customer.ContactNumber) == "" {
		return fmt.Errorf("%w: contactNumber is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Vehicle.Registration) == "" {
		return fmt.Errorf("%w: vehicle registration is required", ErrInvalidInput)
	}
	if req.Vehicle.EngineSizeCc <= 0 {
		return fmt.Errorf("%w: engineSizeCc must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата внутри окна бронирования и гараж
// в этот день недели работает
func validateDate(config *domain.SlotConfiguration, bookingDate, now time.Time) error {
	from, to := config.BookableRange(now)

	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(from) || dateOnly.After(to) {
		return fmt.Errorf("%w: bookable window is %s to %s", ErrDateOutOfRange,
			from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	if !config.IsOpenOn(bookingDate.Weekday()) {
		return ErrGarageClosed
	}

	return nil
}

// validateSlotTimes проверяет, что запрошенное окно совпадает с одним из
// слотов сетки конфигурации
func validateSlotTimes(config *domain.SlotConfiguration, start, end types.TimeString) error {
	for _, slot := range config.SlotTimes() {
		if slot[0] == start && slot[1] == end {
			return nil
		}
	}
	return fmt.Errorf("%w: %s - %s does not match the slot grid", ErrInvalidTimeSlot, start, end)
}

// countActiveBookings подсчитывает бронирования, занимающие место в слоте
func countActiveBookings(bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if booking.IsActive() {
			count++
		}
	}
	return count
}
