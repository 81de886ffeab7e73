package vehicle_lookup

import "github.com/ign-garage/booking-service/internal/integrations/vehicledata"

// VehicleResponse HTTP response model: данные для автозаполнения формы
type VehicleResponse struct {
	Registration      string `json:"registration"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	EngineSizeCc      int    `json:"engineSizeCc"`
	FuelType          string `json:"fuelType"`
	Colour            string `json:"colour,omitempty"`
	YearOfManufacture int    `json:"yearOfManufacture,omitempty"`

	// Class 7 MOT для тяжёлых коммерческих ТС
	RequiresMotClass7 bool `json:"requiresMotClass7"`
	IsVan             bool `json:"isVan"`
}

// FromVehicle конвертирует ответ провайдера в HTTP response
func FromVehicle(v *vehicledata.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		Registration:      v.Registration,
		Make:              v.Make,
		Model:             v.Model,
		EngineSizeCc:      v.EngineCapacityCc,
		FuelType:          v.FuelType,
		Colour:            v.Colour,
		YearOfManufacture: v.YearOfManufacture,
		RequiresMotClass7: v.RequiresMotClass7(),
		IsVan:             v.IsVan(),
	}
}
