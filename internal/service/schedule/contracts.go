package schedule

import (
	"context"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

// Repository интерфейс репозитория расписания
type Repository interface {
	GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error)
	UpdateConfiguration(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error)
	ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error)
	CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error)
	DeleteClosedDay(ctx context.Context, id int64) error
	ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error)
	CreateUnavailableSlot(ctx context.Context, slot *domain.UnavailableSlot) (*domain.UnavailableSlot, error)
	DeleteUnavailableSlot(ctx context.Context, id int64) error
}

// AvailabilityCache интерфейс кэша доступности.
// Любое изменение расписания меняет выдачу слотов, поэтому кэш
// сбрасывается синхронно после каждой записи.
type AvailabilityCache interface {
	InvalidateAvailability(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
