package update_rate_config

import (
	"net/http"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	"github.com/ign-garage/booking-service/internal/domain"
	rateSvc "github.com/ign-garage/booking-service/internal/service/rateconfig"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "rate configuration is invalid"
)

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

// Handle PUT /api/v1/admin/rate-configuration
//
// Документ заменяется целиком: частичных обновлений нет, откат — это
// повторный PUT предыдущей версии.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var document domain.RateConfiguration
	if err := handlers.DecodeJSON(r, &document); err != nil {
		h.logger.Warn("PUT /admin/rate-configuration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var updatedBy *string
	if actor := r.Header.Get("X-Admin-User"); actor != "" {
		updatedBy = &actor
	}

	warnings, err := h.service.Update(r.Context(), &document, updatedBy)
	if err != nil {
		if ve, ok := rateSvc.AsValidationError(err); ok {
			h.logger.Warn("PUT /admin/rate-configuration - Validation failed: %d field errors", len(ve.Fields))
			details := make([]handlers.ErrorDetail, 0, len(ve.Fields))
			for _, fe := range ve.Fields {
				details = append(details, handlers.ErrorDetail{Field: fe.Field, Message: fe.Message})
			}
			handlers.RespondValidationError(w, msgValidationFailed, details)
			return
		}

		h.logger.Error("PUT /admin/rate-configuration - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/rate-configuration - Saved with %d warnings", len(warnings))
	handlers.RespondJSON(w, http.StatusOK, &UpdateRateConfigResponse{
		Saved:    true,
		Warnings: warnings,
	})
}
