package vehicledata

import "strings"

// Vehicle данные транспортного средства от провайдера
type Vehicle struct {
	Registration      string  `json:"registration"`
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	EngineCapacityCc  int     `json:"engineCapacityCc"`
	FuelType          string  `json:"fuelType"`
	BodyStyle         string  `json:"bodyStyle"`
	GrossWeightKg     float64 `json:"grossVehicleWeightKg"`
	YearOfManufacture int     `json:"yearOfManufacture"`
	Colour            string  `json:"colour"`
}

// IsVan определяет, относится ли ТС к фургонам по типу кузова
func (v *Vehicle) IsVan() bool {
	return strings.Contains(strings.ToLower(v.BodyStyle), "van")
}

// RequiresMotClass7 определяет необходимость MOT Class 7 по полной массе.
// Порог 3000 кг: более тяжёлые коммерческие ТС проходят Class 7.
func (v *Vehicle) RequiresMotClass7() bool {
	return v.GrossWeightKg > 3000
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
