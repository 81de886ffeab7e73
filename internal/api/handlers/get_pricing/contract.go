package get_pricing

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/service/pricing"
)

type RateProvider interface {
	Get(ctx context.Context) (*domain.RateConfiguration, error)
}

type PricingService interface {
	ComputeCatalog(engineSizeCc int, cfg *domain.RateConfiguration) (*domain.ServiceCatalog, error)
	ApplyDiscounts(catalog *domain.ServiceCatalog, sel pricing.Selection) *domain.ServiceCatalog
	TotalPrice(catalog *domain.ServiceCatalog, sel pricing.Selection) float64
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
