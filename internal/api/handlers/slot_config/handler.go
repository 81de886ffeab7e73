package slot_config

import (
	"errors"
	"net/http"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	"github.com/ign-garage/booking-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgConfigNotFound     = "slot configuration not found"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/admin/slot-configuration
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetConfiguration(r.Context())
	if err != nil {
		if errors.Is(err, schedule.ErrConfigNotFound) {
			handlers.RespondNotFound(w, msgConfigNotFound)
			return
		}
		h.logger.Error("GET /admin/slot-configuration - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainConfiguration(config))
}

// HandleUpdate PUT /api/v1/admin/slot-configuration
//
// Конфигурация заменяется целиком и сразу становится активной.
// Существующие бронирования вне новой сетки остаются как есть.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req SlotConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slot-configuration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateConfiguration(r.Context(), req.ToDomainConfiguration())
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		if errors.Is(err, schedule.ErrConfigNotFound) {
			handlers.RespondNotFound(w, msgConfigNotFound)
			return
		}
		h.logger.Error("PUT /admin/slot-configuration - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/slot-configuration - Replaced")
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfiguration(updated))
}
