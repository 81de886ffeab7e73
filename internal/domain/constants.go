package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// VATMultiplier is the fixed UK VAT applied to computed service and repair
// prices. Deliberately not configurable.
const VATMultiplier = 1.20

// Booking reference format: IGN-YYYYMMDD-NNN, where NNN is a zero-padded
// sequence over bookings created the same calendar day.
const (
	BookingReferencePrefix     = "IGN"
	BookingReferenceDateFormat = "20060102"
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAvailabilityRangeDays    = 365
)

// InactiveStatuses список статусов, не занимающих вместимость слота.
// Используется при подсчёте занятости слотов.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
