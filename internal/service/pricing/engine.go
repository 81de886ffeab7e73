package pricing

import (
	"math"
	"strings"

	"github.com/ign-garage/booking-service/internal/domain"
)

// Детали, входящие в стоимость каждого уровня обслуживания
var servicePartsMap = map[string][]string{
	domain.ItemIDOilChange:      {"oilFilter"},
	domain.ItemIDInterimService: {"oilFilter", "airFilter"},
	domain.ItemIDFullService:    {"oilFilter", "airFilter", "pollenFilter"},
	domain.ItemIDMajorService:   {"oilFilter", "airFilter", "pollenFilter"},
}

// Service чистый расчёт каталога цен. Не ходит в базу и не зависит от
// времени: одинаковые вход и конфигурация всегда дают одинаковый каталог.
type Service struct{}

// NewService создает сервис расчёта цен
func NewService() *Service {
	return &Service{}
}

// ComputeCatalog строит полный каталог цен для ТС с указанным объёмом
// двигателя. Отключённые позиции конфигурации в каталог не попадают.
func (s *Service) ComputeCatalog(engineSizeCc int, cfg *domain.RateConfiguration) (*domain.ServiceCatalog, error) {
	if engineSizeCc <= 0 {
		return nil, ErrInvalidEngineSize
	}

	band := domain.BandForCapacity(engineSizeCc)

	catalog := &domain.ServiceCatalog{
		MotAndServicing:                 s.motAndServicing(band, cfg),
		AdditionalWork:                  s.additionalWork(engineSizeCc, cfg),
		Repairs:                         s.repairs(cfg),
		Addons:                          s.addons(cfg),
		IsFreeVehicleSafetyCheckEnabled: cfg.VehicleSafetyCheck.Enabled && cfg.VehicleSafetyCheck.FreeForBlueLightHolders,
	}

	return catalog, nil
}

func (s *Service) motAndServicing(band domain.EngineSizeBand, cfg *domain.RateConfiguration) []domain.ServiceItem {
	items := make([]domain.ServiceItem, 0, 6)

	if cfg.MotClass4.Enabled {
		items = append(items, motItem(domain.ItemIDMot, "MOT (Class 4)", &cfg.MotClass4))
	}
	if cfg.MotClass7.Enabled {
		items = append(items, motItem(domain.ItemIDMotClass7, "MOT (Class 7)", &cfg.MotClass7))
	}

	services := []struct {
		id    string
		name  string
		hours domain.BandPrices
	}{
		{domain.ItemIDOilChange, "Oil Change", cfg.ServicePricing.HourlyRates.OilChange},
		{domain.ItemIDInterimService, "Interim Service", cfg.ServicePricing.HourlyRates.Interim},
		{domain.ItemIDFullService, "Full Service", cfg.ServicePricing.HourlyRates.Full},
		{domain.ItemIDMajorService, "Major Service", cfg.ServicePricing.HourlyRates.Major},
	}

	for _, svc := range services {
		price := s.servicePrice(svc.id, svc.hours[band], band, cfg)
		items = append(items, domain.ServiceItem{
			ID:         svc.id,
			Name:       svc.name,
			BasePrice:  price,
			FinalPrice: price,
			Discounts:  []domain.Discount{},
			Type:       domain.ItemTypeService,
		})
	}

	return items
}

// servicePrice считает цену уровня обслуживания по формуле:
// (ставка × часы) + детали + (масло × цена масла), затем НДС.
// Отсутствующее в конфигурации значение считается нулём.
func (s *Service) servicePrice(serviceID string, hours float64, band domain.EngineSizeBand, cfg *domain.RateConfiguration) float64 {
	labourRate := cfg.ServicingRates.ServiceLabourRate
	oilQty := cfg.ServicePricing.OilQty[band]
	oilPrice := cfg.ServicingRates.StandardOilPrice

	var partsCost float64
	for _, part := range servicePartsMap[serviceID] {
		switch part {
		case "airFilter":
			partsCost += cfg.ServicePricing.PartCosts.AirFilter[band]
		case "pollenFilter":
			partsCost += cfg.ServicePricing.PartCosts.PollenFilter[band]
		case "oilFilter":
			partsCost += cfg.ServicePricing.PartCosts.OilFilter[band]
		}
	}

	subtotal := labourRate*hours + partsCost + oilQty*oilPrice
	return roundToPence(subtotal * domain.VATMultiplier)
}

func (s *Service) additionalWork(engineSizeCc int, cfg *domain.RateConfiguration) []domain.ServiceItem {
	items := make([]domain.ServiceItem, 0)

	// Продукты с ценой ниже/выше 2000cc
	for _, product := range cfg.CustomProducts {
		if !product.Enabled {
			continue
		}
		price := product.Above2000ccPrice
		if engineSizeCc <= 2000 {
			price = product.Below2000ccPrice
		}
		items = append(items, domain.ServiceItem{
			ID:         slug(product.Name),
			Name:       product.Name,
			BasePrice:  roundToPence(price),
			FinalPrice: roundToPence(price),
			Discounts:  []domain.Discount{},
			Type:       domain.ItemTypeProduct,
		})
	}

	// Продукты с трёхуровневой ценой по объёму двигателя
	for _, product := range cfg.Products {
		if !product.Enabled {
			continue
		}
		var price float64
		switch {
		case engineSizeCc <= 1500:
			price = product.PriceUpTo1500
		case engineSizeCc <= 2400:
			price = product.Price1501To2400
		default:
			price = product.PriceAbove2400
		}
		items = append(items, domain.ServiceItem{
			ID:         slug(product.Name),
			Name:       product.Name,
			BasePrice:  roundToPence(price),
			FinalPrice: roundToPence(price),
			Discounts:  []domain.Discount{},
			Type:       domain.ItemTypeProduct,
		})
	}

	// Продукты с единой ценой и скидкой при покупке с обслуживанием
	for _, product := range cfg.SinglePriceProducts {
		if !product.Enabled {
			continue
		}
		discounts := []domain.Discount{}
		if product.EnableServicePrice && product.PriceWithService != nil {
			discounts = append(discounts, domain.Discount{
				Condition:       domain.ConditionWithAnyService,
				DiscountedPrice: roundToPence(*product.PriceWithService),
			})
		}
		items = append(items, domain.ServiceItem{
			ID:         slug(product.Name),
			Name:       product.Name,
			BasePrice:  roundToPence(product.DefaultPrice),
			FinalPrice: roundToPence(product.DefaultPrice),
			Discounts:  discounts,
			Type:       domain.ItemTypeProduct,
		})
	}

	// Проверка безопасности с набором условных цен
	if cfg.VehicleSafetyCheck.Enabled {
		discounts := []domain.Discount{}
		conditional := []struct {
			condition domain.DiscountCondition
			price     domain.ConditionalPrice
		}{
			{domain.ConditionWithMot, cfg.VehicleSafetyCheck.PriceWithMOT},
			{domain.ConditionWithInterimService, cfg.VehicleSafetyCheck.PriceWithInterimService},
			{domain.ConditionWithFullService, cfg.VehicleSafetyCheck.PriceWithFullService},
			{domain.ConditionWithMajorService, cfg.VehicleSafetyCheck.PriceWithMajorService},
		}
		for _, c := range conditional {
			if c.price.Enabled {
				discounts = append(discounts, domain.Discount{
					Condition:       c.condition,
					DiscountedPrice: roundToPence(c.price.Price),
				})
			}
		}

		items = append(items, domain.ServiceItem{
			ID:         domain.ItemIDVehicleSafetyCheck,
			Name:       "Vehicle Safety Check",
			BasePrice:  roundToPence(cfg.VehicleSafetyCheck.Price),
			FinalPrice: roundToPence(cfg.VehicleSafetyCheck.Price),
			Discounts:  discounts,
			Type:       domain.ItemTypeProduct,
		})
	}

	return items
}

func (s *Service) repairs(cfg *domain.RateConfiguration) []domain.ServiceItem {
	items := make([]domain.ServiceItem, 0, len(cfg.CommonRepairs.Repairs))

	for _, repair := range cfg.CommonRepairs.Repairs {
		if !repair.Enabled {
			continue
		}
		price := repairPrice(&repair, cfg.CommonRepairs.MechanicalLabourRate)
		items = append(items, domain.ServiceItem{
			ID:         slug(repair.Product),
			Name:       repair.Product,
			BasePrice:  price,
			FinalPrice: price,
			Discounts:  []domain.Discount{},
			Type:       domain.ItemTypeRepair,
			PriceType:  repair.PriceType,
		})
	}

	return items
}

// repairPrice считает цену ремонта: стоимость деталей OEM с процентным
// модификатором плюс работа механика, затем НДС.
func repairPrice(repair *domain.RepairItem, labourRate float64) float64 {
	partsPrice := repair.BasePartsPrice
	modifier := partsPrice / 100 * math.Abs(repair.OEMPartsPriceModifier)
	if repair.OEMPartsModifierIsIncrease {
		partsPrice += modifier
	} else {
		partsPrice -= modifier
	}

	subtotal := labourRate*repair.LabourHours + partsPrice
	return roundToPence(subtotal * domain.VATMultiplier)
}

func (s *Service) addons(cfg *domain.RateConfiguration) []domain.ServiceItem {
	items := make([]domain.ServiceItem, 0, len(cfg.DeliveryOptions))

	for _, option := range cfg.DeliveryOptions {
		if !option.Enabled {
			continue
		}
		items = append(items, domain.ServiceItem{
			ID:         slug(option.Name),
			Name:       option.Name,
			BasePrice:  roundToPence(option.PriceWithService),
			FinalPrice: roundToPence(option.PriceWithService),
			Discounts:  []domain.Discount{},
			Type:       domain.ItemTypeProduct,
		})
	}

	return items
}

func motItem(id, name string, mot *domain.MotRates) domain.ServiceItem {
	discounts := []domain.Discount{}
	if mot.Discounts.PriceWithInterimService.Enabled {
		discounts = append(discounts, domain.Discount{
			Condition:       domain.ConditionWithInterimService,
			DiscountedPrice: roundToPence(mot.Discounts.PriceWithInterimService.Price),
		})
	}
	if mot.Discounts.PriceWithFullService.Enabled {
		discounts = append(discounts, domain.Discount{
			Condition:       domain.ConditionWithFullService,
			DiscountedPrice: roundToPence(mot.Discounts.PriceWithFullService.Price),
		})
	}
	if mot.Discounts.PriceWithMajorService.Enabled {
		discounts = append(discounts, domain.Discount{
			Condition:       domain.ConditionWithMajorService,
			DiscountedPrice: roundToPence(mot.Discounts.PriceWithMajorService.Price),
		})
	}

	return domain.ServiceItem{
		ID:         id,
		Name:       name,
		BasePrice:  roundToPence(mot.StandardPrice),
		FinalPrice: roundToPence(mot.StandardPrice),
		Discounts:  discounts,
		Type:       domain.ItemTypeService,
	}
}

// slug превращает название позиции в стабильный идентификатор
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// roundToPence округляет до пенса, чтобы каталог был детерминированным
// и совпадал байт в байт между вызовами
func roundToPence(v float64) float64 {
	return math.Round(v*100) / 100
}
