package get_available_slots

import (
	"context"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error)
	ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error)
	ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error)
}

// AvailabilityCache интерфейс кэша доступности
type AvailabilityCache interface {
	GetAvailability(ctx context.Context, days int, out interface{}) bool
	SetAvailability(ctx context.Context, days int, payload interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
