package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
)

func TestApplyDiscounts_FirstMatchingConditionWins(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	// Выбраны и Full, и Major: у MOT скидка WITH_FULL_SERVICE идёт первой
	// в конфигурации и потому выигрывает.
	resolved := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs: []string{domain.ItemIDFullService, domain.ItemIDMajorService, domain.ItemIDMot},
	})

	mot := findItem(t, resolved.MotAndServicing, domain.ItemIDMot)
	assert.Equal(t, 19.99, mot.FinalPrice)
	require.NotNil(t, mot.OriginalPrice)
	assert.Equal(t, 54.85, *mot.OriginalPrice)
	require.NotNil(t, mot.DiscountPercent)
	assert.Equal(t, 64, *mot.DiscountPercent)
}

func TestApplyDiscounts_DisabledDiscountNotApplied(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	// Скидка MOT за Interim Service выключена в конфигурации
	resolved := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs: []string{domain.ItemIDInterimService, domain.ItemIDMot},
	})

	mot := findItem(t, resolved.MotAndServicing, domain.ItemIDMot)
	assert.Equal(t, 54.85, mot.FinalPrice)
	assert.Nil(t, mot.OriginalPrice)
	assert.Nil(t, mot.DiscountPercent)
}

func TestApplyDiscounts_FullResetWhenConditionGone(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	withDiscount := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs: []string{domain.ItemIDFullService, domain.ItemIDMot},
	})
	mot := findItem(t, withDiscount.MotAndServicing, domain.ItemIDMot)
	require.Equal(t, 19.99, mot.FinalPrice)

	// Услуга снята из выбора: повторное применение к уже пересчитанному
	// каталогу полностью откатывает скидку.
	reset := svc.ApplyDiscounts(withDiscount, Selection{
		ServiceIDs: []string{domain.ItemIDMot},
	})
	mot = findItem(t, reset.MotAndServicing, domain.ItemIDMot)
	assert.Equal(t, 54.85, mot.FinalPrice)
	assert.Nil(t, mot.OriginalPrice)
	assert.Nil(t, mot.DiscountPercent)
}

func TestApplyDiscounts_WithAnyServiceCondition(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	resolved := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs: []string{domain.ItemIDInterimService, "air-con-regas"},
	})

	regas := findItem(t, resolved.AdditionalWork, "air-con-regas")
	assert.Equal(t, 69.0, regas.FinalPrice)

	// MOT сам по себе обслуживанием не считается
	motOnly := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs: []string{domain.ItemIDMot, "air-con-regas"},
	})
	regas = findItem(t, motOnly.AdditionalWork, "air-con-regas")
	assert.Equal(t, 89.0, regas.FinalPrice)
}

func TestApplyDiscounts_BlueLightCardFreeSafetyCheck(t *testing.T) {
	svc := NewService()

	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	resolved := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs:            []string{domain.ItemIDVehicleSafetyCheck},
		IsBlueLightCardHolder: true,
	})

	safetyCheck := findItem(t, resolved.AdditionalWork, domain.ItemIDVehicleSafetyCheck)
	assert.Equal(t, 0.0, safetyCheck.FinalPrice)
	require.NotNil(t, safetyCheck.OriginalPrice)
	assert.Equal(t, 35.0, *safetyCheck.OriginalPrice)
	require.NotNil(t, safetyCheck.DiscountPercent)
	assert.Equal(t, 100, *safetyCheck.DiscountPercent)
}

func TestApplyDiscounts_BlueLightWithoutFreeCheckDisabled(t *testing.T) {
	svc := NewService()

	cfg := testConfig()
	cfg.VehicleSafetyCheck.FreeForBlueLightHolders = false

	catalog, err := svc.ComputeCatalog(1400, cfg)
	require.NoError(t, err)

	resolved := svc.ApplyDiscounts(catalog, Selection{
		ServiceIDs:            []string{domain.ItemIDVehicleSafetyCheck},
		IsBlueLightCardHolder: true,
	})

	safetyCheck := findItem(t, resolved.AdditionalWork, domain.ItemIDVehicleSafetyCheck)
	assert.Equal(t, 35.0, safetyCheck.FinalPrice)
}

func TestTotalPrice_EndToEndScenario(t *testing.T) {
	svc := NewService()

	// Сценарий: двигатель 1400cc, Full Service £162.00, MOT по скидке £19.99
	catalog, err := svc.ComputeCatalog(1400, testConfig())
	require.NoError(t, err)

	sel := Selection{ServiceIDs: []string{domain.ItemIDFullService, domain.ItemIDMot}}
	resolved := svc.ApplyDiscounts(catalog, sel)

	full := findItem(t, resolved.MotAndServicing, domain.ItemIDFullService)
	mot := findItem(t, resolved.MotAndServicing, domain.ItemIDMot)
	assert.Equal(t, 162.00, full.FinalPrice)
	assert.Equal(t, 19.99, mot.FinalPrice)

	assert.Equal(t, 181.99, svc.TotalPrice(resolved, sel))
}
