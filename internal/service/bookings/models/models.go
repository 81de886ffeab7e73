package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// VehicleResponse снимок данных автомобиля на момент бронирования
type VehicleResponse struct {
	Registration string  `json:"registration"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	EngineSizeCc *int    `json:"engineSizeCc,omitempty"`
	FuelType     *string `json:"fuelType,omitempty"`
	VehicleClass *string `json:"vehicleClass,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                    int64           `json:"id"`
	Reference             string          `json:"reference"`
	Vehicle               VehicleResponse `json:"vehicle"`
	BookingDate           string          `json:"bookingDate"` // "2026-03-15"
	StartTime             string          `json:"startTime"`   // "09:00"
	EndTime               string          `json:"endTime"`     // "11:00"
	Services              json.RawMessage `json:"services"`
	TotalPrice            float64         `json:"totalPrice"`
	IsBlueLightCardHolder bool            `json:"isBlueLightCardHolder"`
	Status                string          `json:"status"`
	Notes                 *string         `json:"notes,omitempty"`
	CancellationReason    *string         `json:"cancellationReason,omitempty"`
	CancelledAt           *string         `json:"cancelledAt,omitempty"`
	CreatedAt             string          `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:        b.ID,
		Reference: b.Reference,
		Vehicle: VehicleResponse{
			Registration: b.Vehicle.Registration,
			Make:         b.Vehicle.Make,
			Model:        b.Vehicle.Model,
			EngineSizeCc: b.Vehicle.EngineSizeCc,
			FuelType:     b.Vehicle.FuelType,
			VehicleClass: b.Vehicle.VehicleClass,
		},
		BookingDate:           b.BookingDate.Format(domain.DateFormat),
		StartTime:             string(b.StartTime),
		EndTime:               string(b.EndTime),
		Services:              b.ServicesData,
		TotalPrice:            b.TotalPrice,
		IsBlueLightCardHolder: b.IsBlueLightCardHolder,
		Status:                string(b.Status),
		Notes:                 b.Notes,
		CancellationReason:    b.CancellationReason,
		CreatedAt:             b.CreatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: responses,
		Total:    len(responses),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}
