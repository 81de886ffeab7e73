package bookings

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CalendarClient интерфейс клиента календаря гаража
type CalendarClient interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// AvailabilityCache интерфейс кэша доступности.
// Отмена и смена статуса меняют занятость слотов, поэтому кэш сбрасывается
// синхронно после каждой успешной записи.
type AvailabilityCache interface {
	InvalidateAvailability(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
