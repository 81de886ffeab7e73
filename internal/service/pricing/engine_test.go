package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/ptr"
)

// testConfig собирает конфигурацию для сценария из спецификации сервиса:
// ставка £60/час, Full Service 1.5 часа для диапазона 1201cc-1500cc,
// детали в сумме на £45, масло не учитывается.
func testConfig() *domain.RateConfiguration {
	cfg := &domain.RateConfiguration{}

	cfg.MotClass4.Enabled = true
	cfg.MotClass4.StandardPrice = 54.85
	cfg.MotClass4.Discounts.PriceWithFullService = domain.ConditionalPrice{Price: 19.99, Enabled: true}
	cfg.MotClass4.Discounts.PriceWithMajorService = domain.ConditionalPrice{Price: 19.99, Enabled: true}
	cfg.MotClass4.Discounts.PriceWithInterimService = domain.ConditionalPrice{Price: 35.00, Enabled: false}

	cfg.ServicingRates.ServiceLabourRate = 60
	cfg.ServicingRates.StandardOilPrice = 0

	band := domain.Band1201To1500
	cfg.ServicePricing.HourlyRates.OilChange = domain.BandPrices{band: 0.5}
	cfg.ServicePricing.HourlyRates.Interim = domain.BandPrices{band: 1.0}
	cfg.ServicePricing.HourlyRates.Full = domain.BandPrices{band: 1.5}
	cfg.ServicePricing.HourlyRates.Major = domain.BandPrices{band: 2.5}
	cfg.ServicePricing.PartCosts.OilFilter = domain.BandPrices{band: 10}
	cfg.ServicePricing.PartCosts.AirFilter = domain.BandPrices{band: 15}
	cfg.ServicePricing.PartCosts.PollenFilter = domain.BandPrices{band: 20}
	cfg.ServicePricing.OilQty = domain.BandPrices{band: 0}

	cfg.VehicleSafetyCheck = domain.VehicleSafetyCheck{
		Enabled:                 true,
		FreeForBlueLightHolders: true,
		Price:                   35,
		PriceWithMOT:            domain.ConditionalPrice{Price: 25, Enabled: true},
	}

	cfg.CommonRepairs.MechanicalLabourRate = 75
	cfg.CommonRepairs.Repairs = []domain.RepairItem{
		{
			Enabled:                    true,
			Product:                    "Brake Pads",
			BasePartsPrice:             50,
			LabourHours:                1.5,
			OEMPartsPriceModifier:      10,
			OEMPartsModifierIsIncrease: true,
			PriceType:                  domain.PriceExample,
		},
		{
			Enabled:                    false,
			Product:                    "Clutch Replacement",
			BasePartsPrice:             300,
			LabourHours:                4.5,
			PriceType:                  domain.PriceReveal,
		},
	}

	cfg.SinglePriceProducts = []domain.SinglePriceProduct{
		{
			Enabled:            true,
			Name:               "Air Con Regas",
			DefaultPrice:       89,
			EnableServicePrice: true,
			PriceWithService:   ptr.Ptr(69.0),
		},
	}

	return cfg
}

func TestComputeCatalog_RejectsNonPositiveEngineSize(t *testing.T) {
	svc := NewService()

	_, err := svc.ComputeCatalog(0, testConfig())
	assert.ErrorIs(t, err, ErrInvalidEngineSize)

	_, err = svc.ComputeCatalog(-100, testConfig())
	assert.ErrorIs(t, err, ErrInvalidEngineSize)
}

func TestComputeCatalog_ServicePriceFormulaWithVAT(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	full := findItem(t, catalog.MotAndServicing, domain.ItemIDFullService)
	// 60 * 1.5 + (10 + 15 + 20) = 135, с НДС 20% = 162.00
	assert.Equal(t, 162.00, full.BasePrice)
	assert.Equal(t, 162.00, full.FinalPrice)
}

func TestComputeCatalog_MissingBandValuesDefaultToZero(t *testing.T) {
	svc := NewService()

	// Конфигурация заполнена только для 1201cc-1500cc; для 3501+ все
	// значения отсутствуют и цена состоит из одних нулей.
	catalog, err := svc.ComputeCatalog(4200, testConfig())
	require.NoError(t, err)

	oilChange := findItem(t, catalog.MotAndServicing, domain.ItemIDOilChange)
	assert.Equal(t, 0.0, oilChange.BasePrice)
}

func TestComputeCatalog_DisabledItemsExcluded(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	// Отключённый ремонт не попадает в каталог
	assert.Len(t, catalog.Repairs, 1)
	assert.Equal(t, "brake-pads", catalog.Repairs[0].ID)

	// MOT Class 7 выключен в тестовой конфигурации
	for _, item := range catalog.MotAndServicing {
		assert.NotEqual(t, domain.ItemIDMotClass7, item.ID)
	}
}

func TestComputeCatalog_RepairPriceModifier(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	brakePads := findItem(t, catalog.Repairs, "brake-pads")
	// Детали: 50 + 10% = 55; работа: 75 * 1.5 = 112.5; итого 167.5 * 1.2 = 201.00
	assert.Equal(t, 201.00, brakePads.BasePrice)
	assert.Equal(t, domain.PriceExample, brakePads.PriceType)
}

func TestComputeCatalog_RepairPriceModifierDecrease(t *testing.T) {
	svc := NewService()

	cfg := testConfig()
	cfg.CommonRepairs.Repairs[0].OEMPartsModifierIsIncrease = false

	catalog, err := svc.ComputeCatalog(1400, cfg)
	require.NoError(t, err)

	brakePads := findItem(t, catalog.Repairs, "brake-pads")
	// Детали: 50 - 10% = 45; работа 112.5; итого 157.5 * 1.2 = 189.00
	assert.Equal(t, 189.00, brakePads.BasePrice)
}

func TestComputeCatalog_Deterministic(t *testing.T) {
	svc := NewService()
	cfg := testConfig()

	first, err := svc.ComputeCatalog(1850, cfg)
	require.NoError(t, err)
	second, err := svc.ComputeCatalog(1850, cfg)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func findItem(t *testing.T, items []domain.ServiceItem, id string) domain.ServiceItem {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("item %q not found", id)
	return domain.ServiceItem{}
}
