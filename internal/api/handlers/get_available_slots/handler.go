package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	getSlots "github.com/ign-garage/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDays         = "invalid days parameter"
	msgNoSlotConfiguration = "online booking is not configured"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid days parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{Days: days})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, getSlots.ErrNoSlotConfiguration):
			h.logger.Error("GET /availability - No slot configuration")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNoSlotConfiguration)

		default:
			h.logger.Error("GET /availability - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
