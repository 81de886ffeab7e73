package slot_config

import (
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/types"
)

// SlotConfigRequest HTTP request model.
// daysOfWeek использует нумерацию time.Weekday: 0 - воскресенье, 6 - суббота.
type SlotConfigRequest struct {
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	SlotsPerTimeSlot    int    `json:"slotsPerTimeSlot"`
	DaysOfWeek          []int  `json:"daysOfWeek"`
	MinLeadTimeDays     int    `json:"minLeadTimeDays"`
	MaxBookingDays      int    `json:"maxBookingDays"`
}

// SlotConfigResponse HTTP response model
type SlotConfigResponse struct {
	ID                  int64  `json:"id"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	SlotsPerTimeSlot    int    `json:"slotsPerTimeSlot"`
	DaysOfWeek          []int  `json:"daysOfWeek"`
	MinLeadTimeDays     int    `json:"minLeadTimeDays"`
	MaxBookingDays      int    `json:"maxBookingDays"`
	UpdatedAt           string `json:"updatedAt"`
}

// ToDomainConfiguration конвертирует HTTP модель в доменную
func (r *SlotConfigRequest) ToDomainConfiguration() *domain.SlotConfiguration {
	days := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}
	return &domain.SlotConfiguration{
		StartTime:           types.TimeString(r.StartTime),
		EndTime:             types.TimeString(r.EndTime),
		SlotDurationMinutes: r.SlotDurationMinutes,
		SlotsPerTimeSlot:    r.SlotsPerTimeSlot,
		DaysOfWeek:          days,
		MinLeadTimeDays:     r.MinLeadTimeDays,
		MaxBookingDays:      r.MaxBookingDays,
		IsActive:            true,
	}
}

// FromDomainConfiguration конвертирует доменную модель в HTTP модель
func FromDomainConfiguration(config *domain.SlotConfiguration) *SlotConfigResponse {
	days := make([]int, 0, len(config.DaysOfWeek))
	for _, d := range config.DaysOfWeek {
		days = append(days, int(d))
	}
	return &SlotConfigResponse{
		ID:                  config.ID,
		StartTime:           string(config.StartTime),
		EndTime:             string(config.EndTime),
		SlotDurationMinutes: config.SlotDurationMinutes,
		SlotsPerTimeSlot:    config.SlotsPerTimeSlot,
		DaysOfWeek:          days,
		MinLeadTimeDays:     config.MinLeadTimeDays,
		MaxBookingDays:      config.MaxBookingDays,
		UpdatedAt:           config.UpdatedAt.Format(time.RFC3339),
	}
}
