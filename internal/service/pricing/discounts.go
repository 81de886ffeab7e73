package pricing

import (
	"math"

	"github.com/ign-garage/booking-service/internal/domain"
)

// ApplyDiscounts пересчитывает итоговые цены каталога для текущего выбора
// клиента. Функция идемпотентна: каталог всегда пересчитывается от базовых
// цен, поэтому снятие услуги из выбора полностью откатывает её скидки.
func (s *Service) ApplyDiscounts(catalog *domain.ServiceCatalog, sel Selection) *domain.ServiceCatalog {
	hasMot := sel.contains(domain.ItemIDMot) || sel.contains(domain.ItemIDMotClass7)
	hasInterim := sel.contains(domain.ItemIDInterimService)
	hasFull := sel.contains(domain.ItemIDFullService)
	hasMajor := sel.contains(domain.ItemIDMajorService)

	conditions := map[domain.DiscountCondition]bool{
		domain.ConditionWithMot:            hasMot,
		domain.ConditionWithInterimService: hasInterim,
		domain.ConditionWithFullService:    hasFull,
		domain.ConditionWithMajorService:   hasMajor,
		domain.ConditionWithAnyService:     hasInterim || hasFull || hasMajor,
	}

	result := &domain.ServiceCatalog{
		MotAndServicing:                 resolveItems(catalog.MotAndServicing, conditions),
		AdditionalWork:                  resolveItems(catalog.AdditionalWork, conditions),
		Repairs:                         resolveItems(catalog.Repairs, conditions),
		Addons:                          resolveItems(catalog.Addons, conditions),
		IsFreeVehicleSafetyCheckEnabled: catalog.IsFreeVehicleSafetyCheckEnabled,
	}

	// Держатели Blue Light Card получают проверку безопасности бесплатно
	if sel.IsBlueLightCardHolder && result.IsFreeVehicleSafetyCheckEnabled {
		for i := range result.AdditionalWork {
			if result.AdditionalWork[i].ID == domain.ItemIDVehicleSafetyCheck {
				item := &result.AdditionalWork[i]
				original := item.BasePrice
				fullDiscount := 100
				item.FinalPrice = 0
				item.OriginalPrice = &original
				item.DiscountPercent = &fullDiscount
			}
		}
	}

	return result
}

// TotalPrice суммирует итоговые цены выбранных позиций каталога
func (s *Service) TotalPrice(catalog *domain.ServiceCatalog, sel Selection) float64 {
	var total float64
	items := catalog.AllItems()
	for _, id := range sel.ServiceIDs {
		for _, item := range items {
			if item.ID == id {
				total += item.FinalPrice
				break
			}
		}
	}
	return math.Round(total*100) / 100
}

// resolveItems применяет к каждой позиции первую подходящую скидку.
// Порядок скидок в позиции задан конфигурацией: первая выигрывает.
func resolveItems(items []domain.ServiceItem, conditions map[domain.DiscountCondition]bool) []domain.ServiceItem {
	out := make([]domain.ServiceItem, len(items))
	for i, item := range items {
		resolved := item

		applied := false
		for _, discount := range item.Discounts {
			if conditions[discount.Condition] {
				original := item.BasePrice
				percent := discountPercent(item.BasePrice, discount.DiscountedPrice)
				resolved.FinalPrice = discount.DiscountedPrice
				resolved.OriginalPrice = &original
				resolved.DiscountPercent = &percent
				applied = true
				break
			}
		}

		if !applied {
			// Полный откат: никакая ранее применённая скидка не переживает пересчёт
			resolved.FinalPrice = item.BasePrice
			resolved.OriginalPrice = nil
			resolved.DiscountPercent = nil
		}

		out[i] = resolved
	}
	return out
}

func discountPercent(base, discounted float64) int {
	if base <= 0 {
		return 0
	}
	return int(math.Round((base - discounted) / base * 100))
}
