package get_pricing

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	"github.com/ign-garage/booking-service/internal/service/pricing"
	rateSvc "github.com/ign-garage/booking-service/internal/service/rateconfig"
)

const (
	msgInvalidEngineSize  = "engineSizeCc must be a positive integer"
	msgPricingUnavailable = "pricing is not configured"
)

type Handler struct {
	rates   RateProvider
	pricing PricingService
	logger  Logger
}

func NewHandler(rates RateProvider, pricingService PricingService, logger Logger) *Handler {
	return &Handler{
		rates:   rates,
		pricing: pricingService,
		logger:  logger,
	}
}

// Handle GET /api/v1/pricing?engineSizeCc=1400&services=mot,fullService&blueLightCard=true
//
// Каталог считается целиком; параметр services влияет только на скидки
// и итоговую сумму.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	engineSizeCc, err := strconv.Atoi(query.Get("engineSizeCc"))
	if err != nil || engineSizeCc <= 0 {
		h.logger.Warn("GET /pricing - Invalid engineSizeCc: %q", query.Get("engineSizeCc"))
		handlers.RespondBadRequest(w, msgInvalidEngineSize)
		return
	}

	sel := pricing.Selection{
		IsBlueLightCardHolder: query.Get("blueLightCard") == "true",
	}
	if raw := query.Get("services"); raw != "" {
		sel.ServiceIDs = strings.Split(raw, ",")
	}

	rateConfig, err := h.rates.Get(r.Context())
	if err != nil {
		if errors.Is(err, rateSvc.ErrConfigNotFound) {
			h.logger.Error("GET /pricing - No rate configuration")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPricingUnavailable)
			return
		}
		h.logger.Error("GET /pricing - Failed to get rate configuration: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	catalog, err := h.pricing.ComputeCatalog(engineSizeCc, rateConfig)
	if err != nil {
		h.logger.Warn("GET /pricing - Pricing failed for cc=%d: %v", engineSizeCc, err)
		handlers.RespondBadRequest(w, msgInvalidEngineSize)
		return
	}

	catalog = h.pricing.ApplyDiscounts(catalog, sel)

	handlers.RespondJSON(w, http.StatusOK, &PricingResponse{
		EngineSizeCc: engineSizeCc,
		Catalog:      *catalog,
		TotalPrice:   h.pricing.TotalPrice(catalog, sel),
	})
}
