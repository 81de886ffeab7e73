package vehicle_lookup

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	"github.com/ign-garage/booking-service/internal/integrations/vehicledata"
)

const (
	msgInvalidRegistration = "invalid vehicle registration"
	msgNotFound            = "vehicle not found"
	msgProviderUnavailable = "vehicle lookup is temporarily unavailable, please enter the details manually"
)

type Handler struct {
	client VehicleDataClient
	logger Logger
}

func NewHandler(client VehicleDataClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/v1/vehicles/{registration}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	registration := strings.TrimSpace(vars["registration"])
	if registration == "" {
		h.logger.Warn("GET /vehicles/{registration} - Empty registration")
		handlers.RespondBadRequest(w, msgInvalidRegistration)
		return
	}

	vehicle, err := h.client.Lookup(r.Context(), registration)
	if err != nil {
		switch {
		case errors.Is(err, vehicledata.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{registration} - Vehicle not found: reg=%s", registration)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			// Провайдер недоступен: форма переключается на ручной ввод
			h.logger.Error("GET /vehicles/{registration} - Lookup failed: reg=%s, error=%v", registration, err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromVehicle(vehicle))
}
