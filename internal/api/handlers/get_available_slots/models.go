package get_available_slots

import (
	getSlots "github.com/ign-garage/booking-service/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model: выдача use case отдается как есть
type AvailabilityResponse struct {
	Days []getSlots.DayAvailability `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *AvailabilityResponse {
	return &AvailabilityResponse{Days: resp.Days}
}
