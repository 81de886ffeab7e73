package create_booking

import (
	"encoding/json"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	createBooking "github.com/ign-garage/booking-service/internal/usecase/create_booking"
	"github.com/ign-garage/booking-service/pkg/types"
)

// CustomerPayload данные клиента в HTTP запросе
type CustomerPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
}

// VehiclePayload данные автомобиля в HTTP запросе
type VehiclePayload struct {
	Registration string  `json:"registration"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	EngineSizeCc int     `json:"engineSizeCc"`
	FuelType     *string `json:"fuelType,omitempty"`
	VehicleClass *string `json:"vehicleClass,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Customer              CustomerPayload `json:"customer"`
	Vehicle               VehiclePayload  `json:"vehicle"`
	BookingDate           string          `json:"bookingDate"` // "2026-03-15"
	StartTime             string          `json:"startTime"`   // "09:00"
	EndTime               string          `json:"endTime"`     // "11:00"
	ServiceIDs            []string        `json:"serviceIds"`
	IsBlueLightCardHolder bool            `json:"isBlueLightCardHolder"`
	Notes                 *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	BookingDate string          `json:"bookingDate"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Status      string          `json:"status"`
	Services    json.RawMessage `json:"services"`
	TotalPrice  float64         `json:"totalPrice"`
	CreatedAt   string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Customer: createBooking.CustomerInput{
			FirstName:     r.Customer.FirstName,
			LastName:      r.Customer.LastName,
			Email:         r.Customer.Email,
			ContactNumber: r.Customer.ContactNumber,
		},
		Vehicle: createBooking.VehicleInput{
			Registration: r.Vehicle.Registration,
			Make:         r.Vehicle.Make,
			Model:        r.Vehicle.Model,
			EngineSizeCc: r.Vehicle.EngineSizeCc,
			FuelType:     r.Vehicle.FuelType,
			VehicleClass: r.Vehicle.VehicleClass,
		},
		Date:                  bookingDate,
		StartTime:             startTime,
		EndTime:               endTime,
		ServiceIDs:            r.ServiceIDs,
		IsBlueLightCardHolder: r.IsBlueLightCardHolder,
		Notes:                 r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Reference:   resp.Reference,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   string(resp.StartTime),
		EndTime:     string(resp.EndTime),
		Status:      resp.Status,
		Services:    resp.Services,
		TotalPrice:  resp.TotalPrice,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
