package closed_days

import (
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

// CreateClosedDayRequest HTTP request model.
// Либо date (разовое закрытие), либо isRecurring + dayOfWeek
// (каждую неделю; 0 - воскресенье, 6 - суббота).
type CreateClosedDayRequest struct {
	Date        string  `json:"date,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	IsRecurring bool    `json:"isRecurring,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

// ClosedDayResponse HTTP response model
type ClosedDayResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
	Reason      *string `json:"reason,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// ClosedDayListResponse HTTP response model
type ClosedDayListResponse struct {
	ClosedDays []ClosedDayResponse `json:"closedDays"`
}

// FromDomainClosedDay конвертирует доменную модель в HTTP модель
func FromDomainClosedDay(day *domain.ClosedDay) ClosedDayResponse {
	resp := ClosedDayResponse{
		ID:          day.ID,
		IsRecurring: day.IsRecurring,
		Reason:      day.Reason,
		CreatedAt:   day.CreatedAt.Format(time.RFC3339),
	}
	if day.IsRecurring {
		if day.DayOfWeek != nil {
			weekday := int(*day.DayOfWeek)
			resp.DayOfWeek = &weekday
		}
	} else {
		resp.Date = day.Date.Format(domain.DateFormat)
	}
	return resp
}

// FromDomainClosedDayList конвертирует список доменных моделей в HTTP модель
func FromDomainClosedDayList(days []*domain.ClosedDay) *ClosedDayListResponse {
	out := &ClosedDayListResponse{ClosedDays: make([]ClosedDayResponse, 0, len(days))}
	for _, day := range days {
		out.ClosedDays = append(out.ClosedDays, FromDomainClosedDay(day))
	}
	return out
}
