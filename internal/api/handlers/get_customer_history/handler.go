package get_customer_history

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ign-garage/booking-service/internal/api/handlers"
)

const msgInvalidCustomerID = "invalid customer id"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	history, err := h.service.GetCustomerHistory(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /admin/customers/%d/bookings - Failed: %v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, history)
}
