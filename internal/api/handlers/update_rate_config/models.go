package update_rate_config

// UpdateRateConfigResponse HTTP response model.
// Warnings не блокируют сохранение: админ видит, какие диапазоны
// двигателя остались без тарифа.
type UpdateRateConfigResponse struct {
	Saved    bool     `json:"saved"`
	Warnings []string `json:"warnings,omitempty"`
}
