package unavailable_slots

import (
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/types"
)

// CreateUnavailableSlotRequest HTTP request model
type CreateUnavailableSlotRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}

// UnavailableSlotResponse HTTP response model
type UnavailableSlotResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// UnavailableSlotListResponse HTTP response model
type UnavailableSlotListResponse struct {
	UnavailableSlots []UnavailableSlotResponse `json:"unavailableSlots"`
}

// ToDomainUnavailableSlot конвертирует HTTP модель в доменную
func (r *CreateUnavailableSlotRequest) ToDomainUnavailableSlot() (*domain.UnavailableSlot, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &domain.UnavailableSlot{
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		Reason:    r.Reason,
	}, nil
}

// FromDomainUnavailableSlot конвертирует доменную модель в HTTP модель
func FromDomainUnavailableSlot(slot *domain.UnavailableSlot) UnavailableSlotResponse {
	return UnavailableSlotResponse{
		ID:        slot.ID,
		Date:      slot.Date.Format(domain.DateFormat),
		StartTime: string(slot.StartTime),
		EndTime:   string(slot.EndTime),
		Reason:    slot.Reason,
		CreatedAt: slot.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainUnavailableSlotList конвертирует список доменных моделей в HTTP модель
func FromDomainUnavailableSlotList(slots []*domain.UnavailableSlot) *UnavailableSlotListResponse {
	out := &UnavailableSlotListResponse{UnavailableSlots: make([]UnavailableSlotResponse, 0, len(slots))}
	for _, slot := range slots {
		out.UnavailableSlots = append(out.UnavailableSlots, FromDomainUnavailableSlot(slot))
	}
	return out
}
