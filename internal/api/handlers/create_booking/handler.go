package create_booking

import (
	"errors"
	"net/http"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	createBooking "github.com/ign-garage/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDateTime     = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgNoSlotConfiguration = "online booking is not configured"
	msgDateOutOfRange      = "date is outside the booking window"
	msgGarageClosed        = "the garage is closed on this date"
	msgInvalidTimeSlot     = "requested time does not match an available slot"
	msgSlotUnavailable     = "this slot is unavailable"
	msgSlotFull            = "this slot is fully booked"
	msgPricingUnavailable  = "pricing is not configured"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%s-%s",
				req.BookingDate, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: date=%s, slot=%s-%s",
				req.BookingDate, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrGarageClosed):
			h.logger.Warn("POST /bookings - Garage closed: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgGarageClosed)

		case errors.Is(err, createBooking.ErrDateOutOfRange):
			h.logger.Warn("POST /bookings - Date out of range: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: date=%s, slot=%s-%s",
				req.BookingDate, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrNoSlotConfiguration):
			h.logger.Error("POST /bookings - No slot configuration")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNoSlotConfiguration)

		case errors.Is(err, createBooking.ErrPricingUnavailable):
			h.logger.Error("POST /bookings - No rate configuration")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPricingUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, ref=%s", result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
