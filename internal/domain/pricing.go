package domain

// DiscountCondition names the selection state under which a conditional
// price applies.
type DiscountCondition string

const (
	ConditionWithMot            DiscountCondition = "WITH_MOT"
	ConditionWithInterimService DiscountCondition = "WITH_INTERIM_SERVICE"
	ConditionWithFullService    DiscountCondition = "WITH_FULL_SERVICE"
	ConditionWithMajorService   DiscountCondition = "WITH_MAJOR_SERVICE"
	ConditionWithAnyService     DiscountCondition = "WITH_ANY_SERVICE"
)

// Discount is a conditional replacement price attached to a catalog item.
// The order of attachment matters: the first discount whose condition holds wins.
type Discount struct {
	Condition       DiscountCondition `json:"condition"`
	DiscountedPrice float64           `json:"discountedPrice"`
}

// ServiceItemType categorises a catalog item.
type ServiceItemType string

const (
	ItemTypeService ServiceItemType = "service"
	ItemTypeProduct ServiceItemType = "product"
	ItemTypeRepair  ServiceItemType = "repair"
)

// PriceDisclosureMode controls how a repair price is presented: as an example
// of a typical job or hidden until the garage is contacted.
type PriceDisclosureMode string

const (
	PriceExample PriceDisclosureMode = "EXAMPLE"
	PriceReveal  PriceDisclosureMode = "REVEAL"
)

// ServiceItem is a single billable catalog entry with its resolved price.
// FinalPrice equals BasePrice until discount resolution rewrites it;
// OriginalPrice and DiscountPercent are set only while a discount applies.
type ServiceItem struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	BasePrice       float64             `json:"basePrice"`
	FinalPrice      float64             `json:"finalPrice"`
	OriginalPrice   *float64            `json:"originalPrice,omitempty"`
	DiscountPercent *int                `json:"discount,omitempty"`
	Discounts       []Discount          `json:"discounts"`
	Type            ServiceItemType     `json:"type"`
	PriceType       PriceDisclosureMode `json:"priceType,omitempty"`
}

// Well-known catalog item identifiers referenced by discount conditions.
const (
	ItemIDMot                = "mot"
	ItemIDMotClass7          = "mot-class-7"
	ItemIDOilChange          = "oilChange"
	ItemIDInterimService     = "interimService"
	ItemIDFullService        = "fullService"
	ItemIDMajorService       = "majorService"
	ItemIDVehicleSafetyCheck = "vehicle-safety-check"
)

// ServiceCatalog is the full priced catalog for one vehicle, grouped the way
// customers see it.
type ServiceCatalog struct {
	MotAndServicing []ServiceItem `json:"motAndServicing"`
	AdditionalWork  []ServiceItem `json:"additionalWork"`
	Repairs         []ServiceItem `json:"repairs"`
	Addons          []ServiceItem `json:"addons"`

	// IsFreeVehicleSafetyCheckEnabled tells the discount resolver that Blue
	// Light Card holders get the safety check for free.
	IsFreeVehicleSafetyCheckEnabled bool `json:"isFreeVehicleSafetyCheckEnabled"`
}

// AllItems returns every item across the four groups, in display order.
func (c *ServiceCatalog) AllItems() []ServiceItem {
	out := make([]ServiceItem, 0, len(c.MotAndServicing)+len(c.AdditionalWork)+len(c.Repairs)+len(c.Addons))
	out = append(out, c.MotAndServicing...)
	out = append(out, c.AdditionalWork...)
	out = append(out, c.Repairs...)
	out = append(out, c.Addons...)
	return out
}
