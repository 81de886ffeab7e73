package rateconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	storage "github.com/ign-garage/booking-service/internal/infra/storage/rateconfig"
)

type fakeRepo struct {
	stored   *domain.StoredRateConfiguration
	getErr   error
	replaced int
}

func (f *fakeRepo) Get(ctx context.Context) (*domain.StoredRateConfiguration, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRepo) Replace(ctx context.Context, document *domain.RateConfiguration, updatedBy *string) (*domain.StoredRateConfiguration, error) {
	f.replaced++
	f.stored = &domain.StoredRateConfiguration{ID: 1, Document: *document, UpdatedBy: updatedBy}
	return f.stored, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validDocument() *domain.RateConfiguration {
	doc := &domain.RateConfiguration{}
	doc.MotClass4.StandardPrice = 54.85
	doc.MotClass4.Availability = []string{"Mo", "Tu", "We", "Th", "Fr"}
	doc.ServicingRates.ServiceLabourRate = 60
	for _, band := range domain.AllBands {
		setBand := func(p *domain.BandPrices, v float64) {
			if *p == nil {
				*p = domain.BandPrices{}
			}
			(*p)[band] = v
		}
		setBand(&doc.ServicePricing.HourlyRates.OilChange, 0.5)
		setBand(&doc.ServicePricing.HourlyRates.Interim, 1)
		setBand(&doc.ServicePricing.HourlyRates.Full, 1.5)
		setBand(&doc.ServicePricing.HourlyRates.Major, 2.5)
		setBand(&doc.ServicePricing.PartCosts.AirFilter, 15)
		setBand(&doc.ServicePricing.PartCosts.PollenFilter, 20)
		setBand(&doc.ServicePricing.PartCosts.OilFilter, 10)
		setBand(&doc.ServicePricing.OilQty, 4.5)
	}
	doc.CommonRepairs.MechanicalLabourRate = 75
	doc.CommonRepairs.Repairs = []domain.RepairItem{
		{Enabled: true, Product: "Brake Pads", BasePartsPrice: 50, LabourHours: 1.5, PriceType: domain.PriceExample},
	}
	return doc
}

func TestUpdate_ValidDocumentSavedWithoutWarnings(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	warnings, err := svc.Update(context.Background(), validDocument(), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, repo.replaced)
}

func TestUpdate_NegativePriceRejectedWithFieldPath(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	doc := validDocument()
	doc.MotClass4.StandardPrice = -1

	_, err := svc.Update(context.Background(), doc, nil)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected ValidationError, got %v", err)
	require.NotEmpty(t, ve.Fields)
	assert.Contains(t, ve.Fields[0].Field, "motClass4.standardPrice")
	assert.Equal(t, 0, repo.replaced, "rejected document must not be persisted")
}

func TestUpdate_InvalidRepairPriceTypeRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	doc := validDocument()
	doc.CommonRepairs.Repairs[0].PriceType = "SOMETIMES"

	_, err := svc.Update(context.Background(), doc, nil)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Error(), "priceType")
}

func TestUpdate_MissingBandProducesWarningNotError(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, nopLogger{})

	doc := validDocument()
	delete(doc.ServicePricing.OilQty, domain.BandAbove3500)

	warnings, err := svc.Update(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "servicePricing.oilQty")
	assert.Contains(t, warnings[0], string(domain.BandAbove3500))
	assert.Equal(t, 1, repo.replaced)
}

func TestGet_NotFoundMappedToServiceError(t *testing.T) {
	repoErr := &fakeRepo{getErr: storage.ErrConfigNotFound}
	svc := NewService(repoErr, nil, nopLogger{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
