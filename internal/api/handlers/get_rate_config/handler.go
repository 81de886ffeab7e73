package get_rate_config

import (
	"errors"
	"net/http"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	rateSvc "github.com/ign-garage/booking-service/internal/service/rateconfig"
)

const msgNotFound = "rate configuration has not been saved yet"

type Handler struct {
	service RateConfigService
	logger  Logger
}

func NewHandler(service RateConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/rate-configuration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, rateSvc.ErrConfigNotFound):
			h.logger.Warn("GET /admin/rate-configuration - Not saved yet")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/rate-configuration - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, config)
}
