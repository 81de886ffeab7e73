package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ign-garage/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// Customer represents a returning customer identified by email.
// Repeat bookings update the existing record instead of duplicating it.
type Customer struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VehicleSnapshot is the vehicle data frozen into a booking at creation time.
type VehicleSnapshot struct {
	Registration string
	Make         *string
	Model        *string
	EngineSizeCc *int
	FuelType     *string
	VehicleClass *string
}

// Booking represents a confirmed garage visit occupying one capacity unit
// of a time slot.
type Booking struct {
	ID         int64
	Reference  string
	CustomerID int64
	Vehicle    VehicleSnapshot

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	// ServicesData is the priced snapshot of the selected services, stored
	// as the JSON document the customer confirmed.
	ServicesData          json.RawMessage
	TotalPrice            float64
	IsBlueLightCardHolder bool

	Status          BookingStatus
	Notes           *string
	CalendarEventID *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActiveStatus returns true for statuses that consume slot capacity.
func (s BookingStatus) IsActiveStatus() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsActive returns true if the booking consumes slot capacity.
func (b *Booking) IsActive() bool {
	return b.Status.IsActiveStatus()
}

// CanBeCancelled returns true if the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// SlotKey returns the identifier of the slot instance this booking occupies.
func (b *Booking) SlotKey() string {
	return SlotKeyFor(b.BookingDate, b.StartTime, b.EndTime)
}

// SlotKeyFor builds the opaque slot identifier shared between availability
// listing and booking creation: "YYYY-MM-DD_HH:MM_HH:MM".
func SlotKeyFor(date time.Time, start, end types.TimeString) string {
	return fmt.Sprintf("%s_%s_%s", date.Format(DateFormat), start, end)
}
