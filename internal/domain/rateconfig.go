package domain

import "time"

// BandPrices maps an engine size band to a monetary value (or hours,
// depending on the field it is used in).
type BandPrices map[EngineSizeBand]float64

// ConditionalPrice is a discounted price that only applies when enabled.
type ConditionalPrice struct {
	Price   float64 `json:"price" validate:"gte=0"`
	Enabled bool    `json:"enabled"`
}

// MotRates configures one MOT class.
type MotRates struct {
	Enabled         bool     `json:"enabled"`
	StandardPrice   float64  `json:"standardPrice" validate:"gte=0"`
	LeadTime        int      `json:"leadTime" validate:"gte=0"`
	LeadTimeEnabled bool     `json:"leadTimeEnabled"`
	Availability    []string `json:"availability" validate:"dive,oneof=Mo Tu We Th Fr Sa Su"`
	Discounts       struct {
		PriceWithInterimService ConditionalPrice `json:"priceWithInterimService"`
		PriceWithFullService    ConditionalPrice `json:"priceWithFullService"`
		PriceWithMajorService   ConditionalPrice `json:"priceWithMajorService"`
	} `json:"discounts"`
}

// ServicingRates holds the hourly and oil rates shared by all service levels.
type ServicingRates struct {
	ServicingLeadTime           int     `json:"servicingLeadTime" validate:"gte=0"`
	ServicingLeadTimeEnabled    bool    `json:"servicingLeadTimeEnabled"`
	ServiceLabourRate           float64 `json:"serviceLabourRate" validate:"gte=0"`
	ElectricalVehicleLabourRate float64 `json:"electricalVehicleLabourRate" validate:"gte=0"`
	StandardOilPrice            float64 `json:"standardOilPrice" validate:"gte=0"`
	SpecialistOilPrice          float64 `json:"specialistOilPrice" validate:"gte=0"`
}

// ServicePricing carries the per-band inputs of the service price formula:
// labour hours per service level, part costs per part type and oil quantity.
// Prices themselves are always computed, never stored.
type ServicePricing struct {
	HourlyRates struct {
		OilChange BandPrices `json:"oilChange" validate:"dive,gte=0"`
		Interim   BandPrices `json:"interim" validate:"dive,gte=0"`
		Full      BandPrices `json:"full" validate:"dive,gte=0"`
		Major     BandPrices `json:"major" validate:"dive,gte=0"`
	} `json:"hourlyRates"`
	PartCosts struct {
		AirFilter    BandPrices `json:"airFilter" validate:"dive,gte=0"`
		PollenFilter BandPrices `json:"pollenFilter" validate:"dive,gte=0"`
		OilFilter    BandPrices `json:"oilFilter" validate:"dive,gte=0"`
	} `json:"partCosts"`
	OilQty BandPrices `json:"oilQty" validate:"dive,gte=0"`
}

// TieredProduct is a product priced over three coarse engine-size tiers.
type TieredProduct struct {
	Enabled         bool    `json:"enabled"`
	Name            string  `json:"name" validate:"required"`
	PriceUpTo1500   float64 `json:"0cc-1500cc" validate:"gte=0"`
	Price1501To2400 float64 `json:"1501cc-2400cc" validate:"gte=0"`
	PriceAbove2400  float64 `json:"2401cc or above" validate:"gte=0"`
}

// CustomProduct is a product split at 2000cc with fuel type applicability.
type CustomProduct struct {
	Enabled          bool    `json:"enabled"`
	Name             string  `json:"name" validate:"required"`
	ExtraDescription string  `json:"extraDescription"`
	Below2000ccPrice float64 `json:"below2000ccPrice" validate:"gte=0"`
	Above2000ccPrice float64 `json:"above2000ccPrice" validate:"gte=0"`
	Petrol           bool    `json:"petrol"`
	Diesel           bool    `json:"diesel"`
	Electric         bool    `json:"electric"`
}

// SinglePriceProduct is a flat-priced product with an optional cheaper price
// when bought together with any service.
type SinglePriceProduct struct {
	Enabled            bool     `json:"enabled"`
	Name               string   `json:"name" validate:"required"`
	DefaultPrice       float64  `json:"defaultPrice" validate:"gte=0"`
	EnableServicePrice bool     `json:"enableServicePrice"`
	PriceWithService   *float64 `json:"priceWithService" validate:"omitempty,gte=0"`
}

// VehicleSafetyCheck configures the safety check product and its bundle prices.
type VehicleSafetyCheck struct {
	Enabled                 bool             `json:"isVehicleSafetyCheckEnabled"`
	FreeForBlueLightHolders bool             `json:"isFreeVehicleSafetyCheckEnabled"`
	Price                   float64          `json:"price" validate:"gte=0"`
	PriceWithMOT            ConditionalPrice `json:"priceWithMOT"`
	PriceWithInterimService ConditionalPrice `json:"priceWithInterimService"`
	PriceWithFullService    ConditionalPrice `json:"priceWithFullService"`
	PriceWithMajorService   ConditionalPrice `json:"priceWithMajorService"`
}

// DeliveryOption is a courtesy add-on such as a loan car or collect & deliver.
type DeliveryOption struct {
	Enabled          bool     `json:"enabled"`
	Name             string   `json:"name" validate:"required"`
	Availability     []string `json:"availability" validate:"dive,oneof=Mo Tu We Th Fr Sa Su"`
	AllowMOTs        bool     `json:"allowMOTs"`
	PriceWithMOT     float64  `json:"priceWithMOT" validate:"gte=0"`
	PriceWithService float64  `json:"priceWithService" validate:"gte=0"`
	LeadTime         int      `json:"leadTime" validate:"gte=0"`
	LeadTimeEnabled  bool     `json:"leadTimeEnabled"`
	MaxDistanceMiles *float64 `json:"maxDistanceMiles" validate:"omitempty,gte=0"` // nil = no limit
}

// RepairItem carries the inputs of the repair price formula. The displayed
// price is computed from the OEM parts price, its percentage modifier and the
// mechanical labour rate.
type RepairItem struct {
	Enabled                    bool                `json:"enabled"`
	Product                    string              `json:"product" validate:"required"`
	BasePartsPrice             float64             `json:"basePartsPrice" validate:"gte=0"`
	LabourHours                float64             `json:"labourHours" validate:"gte=0"`
	OEMPartsPriceModifier      float64             `json:"oemPartsPriceModifier" validate:"gte=0,lte=100"`
	OEMPartsModifierIsIncrease bool                `json:"oemPartsModifierIsIncrease"`
	LeadTime                   int                 `json:"leadTime" validate:"gte=0"`
	LeadTimeEnabled            bool                `json:"leadTimeEnabled"`
	PriceType                  PriceDisclosureMode `json:"priceType" validate:"oneof=EXAMPLE REVEAL"`
}

// CommonRepairs groups the repair items with the labour rate they share.
type CommonRepairs struct {
	MechanicalLabourRate float64      `json:"mechanicalLabourRate" validate:"gte=0"`
	Repairs              []RepairItem `json:"repairs" validate:"dive"`
}

// Offer is a marketing banner attached to a product.
type Offer struct {
	Product        string `json:"product" validate:"required"`
	OfferContent   string `json:"offerContent"`
	TooltipContent string `json:"tooltipContent"`
}

// OffersAndExtras toggles site-wide extras that carry no price of their own.
type OffersAndExtras struct {
	ManufacturerService         bool `json:"manufacturerService"`
	MonthlyRepaymentOptions     bool `json:"monthlyRepaymentOptions"`
	ServicePlanEligibilityCheck bool `json:"servicePlanEligibilityCheck"`
	VideoAuthorisation          bool `json:"videoAuthorisation"`
}

// RateConfiguration is the single admin-owned document all pricing reads
// from. Writes replace the whole document after validation.
type RateConfiguration struct {
	MotClass4           MotRates             `json:"motClass4"`
	MotClass7           MotRates             `json:"motClass7"`
	ServicingRates      ServicingRates       `json:"servicingRates"`
	ServicePricing      ServicePricing       `json:"servicePricing"`
	Products            []TieredProduct      `json:"products" validate:"dive"`
	CustomProducts      []CustomProduct      `json:"customProducts" validate:"dive"`
	SinglePriceProducts []SinglePriceProduct `json:"singlePriceProducts" validate:"dive"`
	VehicleSafetyCheck  VehicleSafetyCheck   `json:"vehicleSafetyCheck"`
	DeliveryOptions     []DeliveryOption     `json:"deliveryOptions" validate:"dive"`
	CommonRepairs       CommonRepairs        `json:"commonRepairs"`
	Offers              []Offer              `json:"offers" validate:"dive"`
	OffersAndExtras     OffersAndExtras      `json:"offersAndExtras"`
}

// StoredRateConfiguration is the persisted row wrapping the document.
type StoredRateConfiguration struct {
	ID        int64
	Document  RateConfiguration
	UpdatedBy *string
	UpdatedAt time.Time
	CreatedAt time.Time
}
