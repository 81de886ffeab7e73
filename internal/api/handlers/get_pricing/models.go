package get_pricing

import "github.com/ign-garage/booking-service/internal/domain"

// PricingResponse HTTP response model: каталог с ценами и итог по выбору
type PricingResponse struct {
	EngineSizeCc int                   `json:"engineSizeCc"`
	Catalog      domain.ServiceCatalog `json:"catalog"`
	TotalPrice   float64               `json:"totalPrice"`
}
